package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/3liantte/grocery-list-app/internal/grocery"
	"github.com/3liantte/grocery-list-app/internal/handler"
	"github.com/3liantte/grocery-list-app/internal/middleware"
	"github.com/3liantte/grocery-list-app/internal/pricing"
	"github.com/3liantte/grocery-list-app/internal/store"
	ws "github.com/3liantte/grocery-list-app/internal/websocket"
)

type Server struct {
	groceryStore *store.GroceryStore
	hub          *ws.Hub
	groceryH     *handler.GroceryHandler
	templateH    *handler.TemplateHandler
	backupH      *handler.BackupHandler
	logger       *slog.Logger
}

// New wires the store, the live-sync hub, and the HTTP handlers. Every store
// mutation is broadcast to connected displays along with the refreshed
// totals, so screens never need to poll.
func New(groceryStore *store.GroceryStore, table grocery.Table, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	groceryStore.OnMutate(func(entity, action, id string) {
		items := groceryStore.Items()
		hub.Broadcast(ws.NewMessage(entity, action, id, map[string]any{
			"total_price":    pricing.RoundCurrency(pricing.TotalPrice(items)),
			"total_quantity": pricing.TotalQuantity(items),
		}))
	})

	return &Server{
		groceryStore: groceryStore,
		hub:          hub,
		groceryH:     handler.NewGroceryHandler(groceryStore, table, logger.With("component", "grocery")),
		templateH:    handler.NewTemplateHandler(groceryStore, logger.With("component", "template")),
		backupH:      handler.NewBackupHandler(groceryStore, logger.With("component", "backup")),
		logger:       logger,
	}
}

// Hub returns the live-sync hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Item API routes
	mux.HandleFunc("GET /api/items", s.groceryH.ListItems)
	mux.HandleFunc("POST /api/items", s.groceryH.CreateItem)
	mux.HandleFunc("PUT /api/items/{id}", s.groceryH.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.groceryH.DeleteItem)
	mux.HandleFunc("GET /api/totals", s.groceryH.Totals)

	// Template API routes
	mux.HandleFunc("GET /api/templates", s.templateH.ListTemplates)
	mux.HandleFunc("POST /api/templates", s.templateH.SaveTemplate)
	mux.HandleFunc("POST /api/templates/{id}/load", s.templateH.LoadTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", s.templateH.DeleteTemplate)

	// Backup API routes
	mux.HandleFunc("POST /api/backup/export", s.backupH.Export)
	mux.HandleFunc("POST /api/backup/import", s.backupH.Import)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
