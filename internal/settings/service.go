package settings

import (
	"context"
	"strconv"
	"sync"
	"unicode/utf8"

	"warehouse-dashboard/internal/gateway"
	"warehouse-dashboard/pkg/auditlog"
	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/models"

	"go.uber.org/zap"
)

const MinPasswordLength = 6

type Settings struct {
	StoreName          string `json:"storeName" binding:"required"`
	Currency           string `json:"currency" binding:"omitempty,len=3"`
	Timezone           string `json:"timezone"`
	LowStockThreshold  int    `json:"lowStockThreshold" binding:"min=0"`
	ExpiryWarningDays  int    `json:"expiryWarningDays" binding:"min=0"`
	EmailNotifications bool   `json:"emailNotifications"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate runs the checks that must pass before the backend is contacted.
func (p PasswordChange) Validate() error {
	if p.CurrentPassword == "" {
		return custom_error.NewValidationError("currentPassword", "Current password is required")
	}
	if p.NewPassword != p.ConfirmPassword {
		return custom_error.NewValidationError("confirmPassword", "New passwords do not match")
	}
	if utf8.RuneCountInString(p.NewPassword) < MinPasswordLength {
		return custom_error.NewValidationError("newPassword", "Password must be at least "+strconv.Itoa(MinPasswordLength)+" characters")
	}
	return nil
}

type settingsRecord struct {
	id string
}

func (r settingsRecord) CreateLogView() models.AuditLog {
	return models.AuditLog{ResourceID: r.id, ResourceType: "settings"}
}

type SettingsService struct {
	gateway  gateway.Caller
	auditLog *auditlog.Auditlog
	logger   *zap.Logger

	mu      sync.RWMutex
	current *Settings
}

func NewSettingsService(gw gateway.Caller, auditLog *auditlog.Auditlog, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		gateway:  gw,
		auditLog: auditLog,
		logger:   logger.Named("settings"),
	}
}

// Get returns the settings last loaded or saved, fetching them on first use.
func (s *SettingsService) Get(ctx context.Context) (Settings, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current != nil {
		return *current, nil
	}

	var loaded Settings
	if err := s.gateway.Do(ctx, gateway.EndpointSettings, "get_settings", nil, &loaded); err != nil {
		return Settings{}, err
	}

	s.mu.Lock()
	s.current = &loaded
	s.mu.Unlock()
	return loaded, nil
}

// Save forwards the settings; the local copy changes only on success.
func (s *SettingsService) Save(ctx context.Context, actor models.Actor, settings Settings) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	params := map[string]any{
		"user_id":            actor.ID,
		"storeName":          settings.StoreName,
		"currency":           settings.Currency,
		"timezone":           settings.Timezone,
		"lowStockThreshold":  settings.LowStockThreshold,
		"expiryWarningDays":  settings.ExpiryWarningDays,
		"emailNotifications": settings.EmailNotifications,
	}
	if err := s.gateway.Do(ctx, gateway.EndpointSettings, "save_settings", params, nil); err != nil {
		return err
	}

	s.mu.Lock()
	saved := settings
	s.current = &saved
	s.mu.Unlock()

	go s.auditLog.Log("save_settings", actor, map[string]interface{}{
		"storeName": settings.StoreName,
		"msg":       "Settings saved",
	}, settingsRecord{id: "store"})

	return nil
}

// ChangePassword validates locally and only then asks the backend.
func (s *SettingsService) ChangePassword(ctx context.Context, actor models.Actor, change PasswordChange) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := change.Validate(); err != nil {
		return err
	}

	params := map[string]any{
		"user_id":          actor.ID,
		"current_password": change.CurrentPassword,
		"new_password":     change.NewPassword,
	}
	if err := s.gateway.Do(ctx, gateway.EndpointSettings, "change_password", params, nil); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.Int("user_id", actor.ID))
	go s.auditLog.Log("change_password", actor, map[string]interface{}{
		"msg": "Password changed",
	}, settingsRecord{id: strconv.Itoa(actor.ID)})

	return nil
}
