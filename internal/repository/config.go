package repository

import (
	"github.com/KostasZigo/kvcs/internal/errs"
	"github.com/KostasZigo/kvcs/internal/refs"
)

// Configuration keys accepted by GetConfig and SetConfig.
const (
	ConfigUserName  = "user.name"
	ConfigUserEmail = "user.email"
)

// ConfigEntry is one key/value pair of the user configuration.
type ConfigEntry struct {
	Key   string
	Value string
}

func configField(cfg *refs.Config, key string) (*string, error) {
	switch key {
	case ConfigUserName:
		return &cfg.UserName, nil
	case ConfigUserEmail:
		return &cfg.UserEmail, nil
	default:
		return nil, errs.New(errs.CodeInvalidArgument, "unknown configuration key: %s", key)
	}
}

func (r *Repository) GetConfig(key string) (string, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return "", err
	}
	field, err := configField(cfg, key)
	if err != nil {
		return "", err
	}
	return *field, nil
}

func (r *Repository) SetConfig(key, value string) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}
	field, err := configField(cfg, key)
	if err != nil {
		return err
	}
	*field = value
	return r.saveConfig(cfg)
}

// ConfigList returns every user configuration key in a fixed order.
func (r *Repository) ConfigList() ([]ConfigEntry, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	return []ConfigEntry{
		{Key: ConfigUserName, Value: cfg.UserName},
		{Key: ConfigUserEmail, Value: cfg.UserEmail},
	}, nil
}
