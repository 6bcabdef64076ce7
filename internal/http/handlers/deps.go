package handlers

import (
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/config"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/feed"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/payment"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/repos"
	"github.com/AlinaPristinskaya/my-awesome-store-sub000/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	SearchHandler  *SearchHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
	SyncHandler    *SyncHandler

	Synchronizer *feed.Synchronizer
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	subRepo := repos.NewSubCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	videoRepo := repos.NewVideoRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, subRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo)

	gateway := payment.New(cfg.GatewayURL, cfg.GatewayMerchant, cfg.GatewaySecret, cfg.Currency)
	sync := feed.NewSynchronizer(feed.NewClient(cfg.FeedURL), catRepo, prodRepo)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc, Videos: videoRepo},
		SearchHandler:  &SearchHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo, Auth: auth, Gateway: gateway},
		AdminHandler: &AdminHandler{
			Orders: orderRepo, Cats: catRepo, Subs: subRepo,
			Prods: prodRepo, Videos: videoRepo,
		},
		SyncHandler:  &SyncHandler{Sync: sync, Key: cfg.SyncKey},
		Synchronizer: sync,
	}
}
