package store

import (
	"database/sql"
	"encoding/json"

	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/util"
	"github.com/pkg/errors"
)

func (s *Store) GetSystemSetting(name string) (*model.SystemSetting, error) {
	if cache, ok := s.SystemSettingCache.Load(name); ok {
		return cache.(*model.SystemSetting), nil
	}

	setting := &model.SystemSetting{}
	stmt := `
    SELECT name, value, description FROM system_setting WHERE name = ?
	`
	if err := s.db.QueryRow(stmt, name).Scan(&setting.Name, &setting.Value, &setting.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get system setting")
	}

	s.SystemSettingCache.Store(setting.Name, setting)
	return setting, nil
}

func (s *Store) UpsertSystemSetting(setting *model.SystemSetting) (*model.SystemSetting, error) {
	stmt := `
		INSERT INTO system_setting (name, value, description)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE
		SET value = EXCLUDED.value, description = EXCLUDED.description
	`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	if _, err := s.db.Exec(stmt, setting.Name, setting.Value, setting.Description); err != nil {
		return nil, errors.Wrap(err, "failed to upsert system setting")
	}

	s.SystemSettingCache.Store(setting.Name, setting)
	return setting, nil
}

// GetOrUpsertSystemSecuritySetting returns the security setting, creating
// it with a fresh JWT secret on first run.
func (s *Store) GetOrUpsertSystemSecuritySetting() (*model.SystemSettingSecurity, error) {
	setting, err := s.GetSystemSetting(model.SettingTypeSecurity)
	if err != nil {
		return nil, err
	}

	securitySetting := &model.SystemSettingSecurity{}
	if setting != nil {
		if err := json.Unmarshal([]byte(setting.Value), securitySetting); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal system security setting")
		}
		if securitySetting.JWTSecret != "" {
			return securitySetting, nil
		}
	}

	secret, err := util.RandomString(32)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate JWT secret")
	}
	securitySetting.JWTSecret = secret

	value, err := json.Marshal(securitySetting)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal system security setting")
	}
	if _, err := s.UpsertSystemSetting(&model.SystemSetting{
		Name:        model.SettingTypeSecurity,
		Value:       string(value),
		Description: "security setting",
	}); err != nil {
		return nil, err
	}

	return securitySetting, nil
}
