package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/session"
	"github.com/Azizyco/WarmindoGenzC/internal/storage"
)

// Settings keys in the settings table.
const (
	keyEwallet  = "payment.ewallet"
	keyQRIS     = "payment.qris"
	keyTransfer = "payment.transfer"
)

// settingsCacheKey and TTL give the reference data session-level caching;
// staff edits show up after at most one TTL.
const (
	settingsCacheKey = "payment_settings"
	settingsCacheTTL = 15 * time.Minute
)

// MethodSettings is the per-method display data. Which fields are populated
// depends on the method: QRIS uses Caption/ImageURL, transfer the bank
// triple, e-wallet the provider triple.
type MethodSettings struct {
	Caption     string `json:"caption,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	AccountNo   string `json:"account_no,omitempty"`
	AccountName string `json:"account_name,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Number      string `json:"number,omitempty"`
	Name        string `json:"name,omitempty"`
}

type Settings struct {
	QRIS     *MethodSettings `json:"qris,omitempty"`
	Transfer *MethodSettings `json:"transfer,omitempty"`
	Ewallet  *MethodSettings `json:"ewallet,omitempty"`
}

type SettingsRepository interface {
	PaymentSettings(ctx context.Context) (Settings, error)
}

type postgresSettingsRepository struct {
	db     *pgxpool.Pool
	assets storage.ObjectStorage // payment-config public bucket
}

func NewSettingsRepository(db *pgxpool.Pool, assets storage.ObjectStorage) SettingsRepository {
	return &postgresSettingsRepository{db: db, assets: assets}
}

func (r *postgresSettingsRepository) PaymentSettings(ctx context.Context) (Settings, error) {
	query := `
		SELECT key, coalesce(value::text, ''), coalesce(image_path, '')
		FROM settings
		WHERE key = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, []string{keyEwallet, keyQRIS, keyTransfer})
	if err != nil {
		return Settings{}, fmt.Errorf("repository: failed to query payment settings: %w", err)
	}
	defer rows.Close()

	var settings Settings
	for rows.Next() {
		var (
			key       string
			rawValue  string
			imagePath string
		)
		if err := rows.Scan(&key, &rawValue, &imagePath); err != nil {
			return Settings{}, fmt.Errorf("repository: failed to scan settings row: %w", err)
		}

		ms := &MethodSettings{}
		if rawValue != "" {
			if err := json.Unmarshal([]byte(rawValue), ms); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("repository: unparseable settings value, keeping image only")
				ms = &MethodSettings{}
			}
		}
		if imagePath != "" {
			ms.ImagePath = imagePath
		}
		ms.ImageURL = r.resolveImageURL(ms.ImagePath)

		switch key {
		case keyEwallet:
			settings.Ewallet = ms
		case keyQRIS:
			settings.QRIS = ms
		case keyTransfer:
			settings.Transfer = ms
		}
	}
	if err := rows.Err(); err != nil {
		return Settings{}, fmt.Errorf("repository: error iterating settings rows: %w", err)
	}

	return settings, nil
}

func (r *postgresSettingsRepository) resolveImageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.assets.PublicURL(path)
}

// cachedSettings wraps a SettingsRepository with session-store caching.
type cachedSettings struct {
	repo  SettingsRepository
	store session.Store
}

func NewCachedSettings(repo SettingsRepository, store session.Store) SettingsRepository {
	return &cachedSettings{repo: repo, store: store}
}

func (c *cachedSettings) PaymentSettings(ctx context.Context) (Settings, error) {
	var cached Settings
	err := c.store.Get(ctx, settingsCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, session.ErrNotFound) {
		log.Warn().Err(err).Msg("payment: settings cache read failed")
	}

	settings, err := c.repo.PaymentSettings(ctx)
	if err != nil {
		return Settings{}, err
	}

	if err := c.store.Set(ctx, settingsCacheKey, settings, settingsCacheTTL); err != nil {
		log.Warn().Err(err).Msg("payment: settings cache write failed")
	}
	return settings, nil
}
