package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/assistantclient"
	"github.com/jakechorley/duty-roster/pkg/clients/gmailclient"
	"github.com/jakechorley/duty-roster/pkg/core/services"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands.
// The gmail and assistant clients are constructed lazily because most
// commands never touch them and both require external credentials.
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	Env      string
	TenantID string

	notifier  services.Notifier
	assistant *assistantclient.Client
}

// Notifier returns the email notifier, running the OAuth flow on first use.
// When no gmail user is configured a logging notifier is returned so
// commands that send mail still work end to end.
func (app *AppContext) Notifier() (services.Notifier, error) {
	if app.notifier != nil {
		return app.notifier, nil
	}

	if app.Cfg.GmailUserID == "" {
		app.Logger.Warn("gmailUserID not configured, email notifications will be logged only")
		app.notifier = &logNotifier{logger: app.Logger}
		return app.notifier, nil
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(app.Ctx, oauthConfig, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	client, err := gmailclient.NewClient(app.Ctx, oauthCfg, token, app.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.notifier = client
	return app.notifier, nil
}

// Assistant returns the schedule assistant client, creating it on first use
func (app *AppContext) Assistant() (*assistantclient.Client, error) {
	if app.assistant != nil {
		return app.assistant, nil
	}

	if app.Cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("geminiAPIKey is not configured")
	}

	client, err := assistantclient.NewClient(app.Ctx, app.Cfg.GeminiAPIKey, app.Cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant client: %w", err)
	}

	app.assistant = client
	return app.assistant, nil
}

// logNotifier records outgoing mail instead of sending it
type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) SendEmail(to, subject, body string) error {
	n.logger.Info("email notification (not sent)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
