package config

import (
	"database/sql"
	"fmt"

	"github.com/chrissnell/radarcurve/pkg/radarrange"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS server (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	listen_addr TEXT,
	port INTEGER,
	tls_cert TEXT,
	tls_key TEXT
);

CREATE TABLE IF NOT EXISTS scenarios (
	name TEXT PRIMARY KEY,
	description TEXT,
	kind TEXT NOT NULL CHECK (kind IN ('range', 'detection')),
	snr_start REAL NOT NULL,
	snr_end REAL NOT NULL,
	samples INTEGER NOT NULL,
	system_temperature REAL,
	bandwidth REAL,
	noise_figure REAL,
	losses REAL,
	peak_power REAL,
	antenna_gain REAL,
	frequency REAL,
	target_rcs REAL,
	pulses INTEGER,
	pfa REAL,
	target_type TEXT,
	method TEXT
);
`

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens (creating if needed) a SQLite configuration database
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	server, err := s.GetServer()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	config.Server = *server

	scenarios, err := s.GetScenarios()
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}
	config.Scenarios = scenarios

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetServer returns the REST server configuration; an empty table yields zero values
func (s *SQLiteProvider) GetServer() (*ServerData, error) {
	var server ServerData
	var listenAddr, cert, key sql.NullString
	var port sql.NullInt64

	err := s.db.QueryRow(`SELECT listen_addr, port, tls_cert, tls_key FROM server WHERE id = 1`).
		Scan(&listenAddr, &port, &cert, &key)
	if err == sql.ErrNoRows {
		return &server, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query server: %w", err)
	}

	server.ListenAddr = listenAddr.String
	server.Port = int(port.Int64)
	server.TLSCertPath = cert.String
	server.TLSKeyPath = key.String
	return &server, nil
}

// GetScenarios returns all scenarios ordered by name
func (s *SQLiteProvider) GetScenarios() ([]ScenarioData, error) {
	query := `
		SELECT name, description, kind, snr_start, snr_end, samples,
		       system_temperature, bandwidth, noise_figure, losses,
		       peak_power, antenna_gain, frequency, target_rcs,
		       pulses, pfa, target_type, method
		FROM scenarios
		ORDER BY name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []ScenarioData
	for rows.Next() {
		var sc ScenarioData
		var description, targetType, method sql.NullString
		var temp, bandwidth, nf, losses, power, gain, freq, rcs, pfa sql.NullFloat64
		var pulses sql.NullInt64

		err := rows.Scan(
			&sc.Name, &description, &sc.Kind,
			&sc.Sweep.StartDB, &sc.Sweep.EndDB, &sc.Sweep.Samples,
			&temp, &bandwidth, &nf, &losses, &power, &gain, &freq, &rcs,
			&pulses, &pfa, &targetType, &method,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		sc.Description = description.String

		switch sc.Kind {
		case KindRange:
			sc.Link = &radarrange.LinkParameters{
				SystemTemperatureK: temp.Float64,
				BandwidthHz:        bandwidth.Float64,
				NoiseFigureDB:      nf.Float64,
				LossesDB:           losses.Float64,
				PeakPowerW:         power.Float64,
				AntennaGainDB:      gain.Float64,
				FrequencyHz:        freq.Float64,
				TargetRCSDBsm:      rcs.Float64,
			}
		case KindDetection:
			sc.Detection = &DetectionData{
				Pulses:     int(pulses.Int64),
				Pfa:        pfa.Float64,
				TargetType: targetType.String,
				Method:     method.String,
			}
		}

		scenarios = append(scenarios, sc)
	}

	return scenarios, rows.Err()
}

// IsReadOnly returns false since SQLite supports writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveConfig replaces the stored configuration with configData
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	if err := configData.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM scenarios`); err != nil {
		return fmt.Errorf("failed to clear scenarios: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO server (id, listen_addr, port, tls_cert, tls_key)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			listen_addr = excluded.listen_addr,
			port = excluded.port,
			tls_cert = excluded.tls_cert,
			tls_key = excluded.tls_key`,
		nullString(configData.Server.ListenAddr), configData.Server.Port,
		nullString(configData.Server.TLSCertPath), nullString(configData.Server.TLSKeyPath),
	)
	if err != nil {
		return fmt.Errorf("failed to save server config: %w", err)
	}

	for i := range configData.Scenarios {
		if err := s.insertScenario(tx, &configData.Scenarios[i]); err != nil {
			return fmt.Errorf("failed to insert scenario %s: %w", configData.Scenarios[i].Name, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteProvider) insertScenario(tx *sql.Tx, sc *ScenarioData) error {
	args := []any{
		sc.Name, nullString(sc.Description), sc.Kind,
		sc.Sweep.StartDB, sc.Sweep.EndDB, sc.Sweep.Samples,
	}

	if sc.Link != nil {
		args = append(args,
			sc.Link.SystemTemperatureK, sc.Link.BandwidthHz, sc.Link.NoiseFigureDB, sc.Link.LossesDB,
			sc.Link.PeakPowerW, sc.Link.AntennaGainDB, sc.Link.FrequencyHz, sc.Link.TargetRCSDBsm,
		)
	} else {
		args = append(args, nil, nil, nil, nil, nil, nil, nil, nil)
	}

	if sc.Detection != nil {
		args = append(args,
			sc.Detection.Pulses, sc.Detection.Pfa,
			nullString(sc.Detection.TargetType), nullString(sc.Detection.Method),
		)
	} else {
		args = append(args, nil, nil, nil, nil)
	}

	_, err := tx.Exec(`
		INSERT INTO scenarios (
			name, description, kind, snr_start, snr_end, samples,
			system_temperature, bandwidth, noise_figure, losses,
			peak_power, antenna_gain, frequency, target_rcs,
			pulses, pfa, target_type, method
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
