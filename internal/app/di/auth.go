package di

import (
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	authadapters "portfolio_backend/internal/feature/auth/adapters"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
	"portfolio_backend/internal/platform/oauth"
)

// NewAuthHandler wires users, sessions, token issuing and the optional OAuth flow.
// OAuth stays disabled (503) unless every OAUTH_* endpoint variable is set.
func NewAuthHandler(db *gorm.DB, sessions authusecase.SessionRepository, jwtCfg jwtmw.Config,
	oauthCfg oauth.Config, httpClient *http.Client, secureCookie bool) *authhandler.AuthHandler {
	users := authadapters.NewUserPostgres(db)
	generator := jwtmw.NewGenerator(jwtCfg.Secret, jwtCfg.AccessTTL)
	authUC := authusecase.NewAuthUsecase(users, sessions, generator, jwtCfg.RefreshTTL)

	// nil interfaceを渡すためにOAuthUsecase型で宣言する
	var oauthUC authhandler.OAuthUsecase
	if oauthCfg.Enabled() {
		provider := authadapters.NewOAuthProvider(oauthCfg, httpClient)
		states := jwtmw.NewStateSigner(jwtCfg.Secret, jwtCfg.StateTTL)
		oauthUC = authusecase.NewOAuthUsecase(provider, states, authUC)
	} else {
		slog.Info("OAuth login disabled")
	}

	return authhandler.NewAuthHandler(authUC, oauthUC, int(jwtCfg.StateTTL.Seconds()), secureCookie)
}
