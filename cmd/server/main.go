package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/liamcoop/chartgen/charts"
	"github.com/liamcoop/chartgen/inference"
	"github.com/liamcoop/chartgen/internal/logger"
	_ "github.com/lib/pq"
)

// recentChartsLimit caps the saved-charts listing.
const recentChartsLimit = 50

type Server struct {
	db     *sql.DB
	engine *inference.Engine
	store  charts.ChartStore
	cache  charts.ChartsCache
	router *chi.Mux
}

// NewServer creates the server. With an empty databaseURL saved charts live
// in memory only; inference itself never touches storage.
func NewServer(databaseURL string) (*Server, error) {
	if databaseURL == "" {
		return newServer(nil, charts.NewInMemoryChartStore())
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newServer(db, charts.NewPostgresChartStore(db))
}

// NewServerWithDB creates the server on an existing database connection.
func NewServerWithDB(db *sql.DB) (*Server, error) {
	return newServer(db, charts.NewPostgresChartStore(db))
}

func newServer(db *sql.DB, store charts.ChartStore) (*Server, error) {
	engine, err := inference.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create inference engine: %w", err)
	}

	s := &Server{
		db:     db,
		engine: engine,
		store:  store,
		cache:  charts.NewInMemoryChartsCache(charts.DefaultCacheConfig()),
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/api/v1/health", s.handleHealth)

	r.Route("/api/v1/charts", func(r chi.Router) {
		// Inference
		r.Post("/generate", s.handleGenerate)
		r.Post("/validate", s.handleValidate)
		r.Get("/types", s.handleChartTypes)

		// Saved charts
		r.Post("/", s.handleCreateChart)
		r.Get("/", s.handleListCharts)

		r.Route("/{chartId}", func(r chi.Router) {
			r.Get("/", s.handleGetChart)
			r.Delete("/", s.handleDeleteChart)
		})
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
	})
}

// Chart generation handler
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.inferFromRequest(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, spec)
}

// inferFromRequest decodes a generation request and runs inference, writing
// the error response itself when anything fails.
func (s *Server) inferFromRequest(w http.ResponseWriter, r *http.Request) (*inference.ChartSpec, bool) {
	var req GenerateChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return nil, false
	}

	data, err := normalizeData(req.Data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return nil, false
	}

	spec, err := s.engine.Infer(data, req.Hints)
	if err != nil {
		var verr *inference.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Message, nil)
			return nil, false
		}
		respondError(w, http.StatusInternalServerError, "chart generation failed", err)
		return nil, false
	}

	return spec, true
}

// normalizeData accepts a JSON object or array and normalizes arrays to the
// {"data": [...]} form the pattern detector understands.
func normalizeData(v any) (map[string]any, error) {
	switch data := v.(type) {
	case map[string]any:
		if len(data) == 0 {
			return nil, fmt.Errorf("data object cannot be empty")
		}
		return data, nil
	case []any:
		if len(data) == 0 {
			return nil, fmt.Errorf("data array cannot be empty")
		}
		return map[string]any{"data": data}, nil
	case nil:
		return nil, fmt.Errorf("data is required")
	default:
		return nil, fmt.Errorf("data must be a JSON object or array")
	}
}

// Structural validation handler: pattern detection without extraction.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidateResponse{
			Valid: false,
			Error: "request body must be a JSON object",
		})
		return
	}

	patterns := s.engine.Validate(data)

	resp := ValidateResponse{
		Valid:    patterns.Any(),
		Patterns: patterns,
	}
	if resp.Valid {
		resp.Message = "Data structure is valid"
	} else {
		resp.Message = "No recognizable data patterns found"
	}

	respondJSON(w, http.StatusOK, resp)
}

// Chart type catalog handler
func (s *Server) handleChartTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ChartTypesResponse{
		ChartTypes: []ChartTypeInfo{
			{
				Type:        "line",
				Description: "Line chart for time series and continuous data",
				BestFor:     []string{"Time series", "Trends over time", "Continuous data"},
			},
			{
				Type:        "bar",
				Description: "Horizontal bar chart for categorical comparison",
				BestFor:     []string{"Categorical data", "Long category names", "Comparisons"},
			},
			{
				Type:        "column",
				Description: "Vertical column chart for categorical comparison",
				BestFor:     []string{"Categorical data", "Comparisons", "Rankings"},
			},
			{
				Type:        "pie",
				Description: "Pie chart for showing proportions",
				BestFor:     []string{"Single category breakdown", "Proportions", "Percentages"},
			},
			{
				Type:        "area",
				Description: "Area chart emphasizing magnitude over time",
				BestFor:     []string{"Time series", "Cumulative data", "Stacked trends"},
			},
			{
				Type:        "scatter",
				Description: "Scatter plot for relationships between variables",
				BestFor:     []string{"Correlations", "Numeric pairs", "Distributions"},
			},
			{
				Type:        "heatmap",
				Description: "Heatmap for 2D grid/matrix data",
				BestFor:     []string{"Matrix data", "Correlation matrices", "2D grids"},
			},
		},
	})
}

// Create (generate and persist) chart handler
func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.inferFromRequest(w, r)
	if !ok {
		return
	}

	chart := &charts.SavedChart{
		ID:        uuid.NewString(),
		Title:     spec.Title,
		ChartType: string(spec.ChartType),
		Spec:      spec,
	}

	if err := s.store.Save(chart); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save chart", err)
		return
	}

	// Listing changed
	s.cache.Invalidate()

	respondJSON(w, http.StatusCreated, chart)
}

// List saved charts handler
func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	listing := s.cache.Get()
	if listing == nil {
		var err error
		listing, err = s.store.ListRecent(recentChartsLimit)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list charts", err)
			return
		}
		s.cache.Set(listing)
	}

	if listing == nil {
		listing = []*charts.SavedChart{}
	}

	respondJSON(w, http.StatusOK, ChartsListResponse{Charts: listing})
}

// Get saved chart handler
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	chartID := chi.URLParam(r, "chartId")

	chart, err := s.store.Get(chartID)
	if err != nil {
		respondError(w, http.StatusNotFound, "chart not found", err)
		return
	}

	respondJSON(w, http.StatusOK, chart)
}

// Delete saved chart handler
func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	chartID := chi.URLParam(r, "chartId")

	if err := s.store.Delete(chartID); err != nil {
		respondError(w, http.StatusNotFound, "chart not found", err)
		return
	}

	s.cache.Invalidate()

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	switch {
	case status >= 500:
		logger.ErrorHttp5xx()
		logger.Error(message, "status", status, "error", err)
	case status >= 400:
		logger.WarnHttp4xx(status)
	}

	response := ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	respondJSON(w, status, response)
}

func main() {
	// DATABASE_URL is optional: without it saved charts are kept in memory.
	databaseURL := os.Getenv("DATABASE_URL")

	server, err := NewServer(databaseURL)
	if err != nil {
		logger.Fatal("Failed to create server", "error", err)
	}
	if server.db != nil {
		defer server.db.Close()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		logger.Info("Server starting", "port", port, "persistence", databaseURL != "")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
