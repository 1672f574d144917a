package handlers

import (
	"github.com/jmoiron/sqlx"

	"localcart/internal/catalog"
	"localcart/internal/config"
	"localcart/internal/gateway"
	"localcart/internal/repos"
	"localcart/internal/services"
)

type Deps struct {
	Auth     *services.AuthService
	MediaDir string

	AuthHandler     *AuthHandler
	CatalogHandler  *CatalogHandler
	ListingHandler  *ListingHandler
	SellHandler     *SellHandler
	SettingsHandler *SettingsHandler
	FeedHandler     *FeedHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	gw := repos.NewBackend(repos.NewDocumentRepo(db), repos.NewBlobRepo(cfg.MediaDir, cfg.MediaBaseURL))
	settings, err := services.LoadSettings(repos.NewSettingsRepo(db))
	if err != nil {
		return nil, err
	}
	auth := &services.AuthService{
		Users:    repos.NewUserRepo(db),
		Docs:     gw,
		Settings: settings,
		Secret:   []byte(cfg.JWTSecret),
		TTL:      cfg.TokenTTL(),
	}
	return newDeps(gw, auth, settings, cfg), nil
}

func newDeps(gw gateway.Gateway, auth *services.AuthService, settings *services.Settings, cfg config.Config) *Deps {
	cat := catalog.Default()
	return &Deps{
		Auth:            auth,
		MediaDir:        cfg.MediaDir,
		AuthHandler:     &AuthHandler{Auth: auth},
		CatalogHandler:  &CatalogHandler{Catalog: cat},
		ListingHandler:  &ListingHandler{GW: gw, UploadConcurrency: cfg.UploadConcurrency},
		SellHandler:     &SellHandler{GW: gw},
		SettingsHandler: &SettingsHandler{Settings: settings},
		FeedHandler:     &FeedHandler{GW: gw},
	}
}
