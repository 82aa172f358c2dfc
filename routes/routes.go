package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	_ "p9e.in/fabtrack/docs"
	"p9e.in/fabtrack/handlers"
	"p9e.in/fabtrack/middleware"
	"p9e.in/fabtrack/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(h *handlers.Handler, tokens *middleware.TokenIssuer, log *zap.Logger) http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/swagger/doc.json", serveSwaggerDoc).Methods("GET")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(tokens.JWTMiddleware)

	api.HandleFunc("/me", h.Me).Methods("GET")
	api.HandleFunc("/change-password", h.ChangePassword).Methods("POST")
	api.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

	registerMasterRoutes(api, h)
	registerProjectRoutes(api, h)

	return middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(r))))
}

// registerMasterRoutes registers vendor and employee master data. Creating
// and deleting masters is reserved for admins.
func registerMasterRoutes(api *mux.Router, h *handlers.Handler) {
	registerCRUDRoutes(api, "/vendors", true, crudHandlers{
		getAll: h.ListVendors,
		names:  h.VendorNames,
		create: h.CreateVendor,
		getOne: h.GetVendor,
		update: h.UpdateVendor,
		delete: h.DeleteVendor,
	})
	registerCRUDRoutes(api, "/employees", true, crudHandlers{
		getAll: h.ListEmployees,
		names:  h.EmployeeNames,
		create: h.CreateEmployee,
		getOne: h.GetEmployee,
		update: h.UpdateEmployee,
		delete: h.DeleteEmployee,
	})
}

func registerProjectRoutes(api *mux.Router, h *handlers.Handler) {
	registerCRUDRoutes(api, "/projects", false, crudHandlers{
		getAll: h.ListProjects,
		create: h.CreateProject,
		getOne: h.GetProject,
		update: h.UpdateProject,
		delete: h.DeleteProject,
	})
	api.HandleFunc("/projects/{id:[0-9]+}/finalize", h.FinalizeProject).Methods("POST")
	api.HandleFunc("/projects/{id:[0-9]+}/drawing", h.GetDrawing).Methods("GET")

	// Measurement sheet
	api.HandleFunc("/projects/{id:[0-9]+}/measurements", h.ListEntries).Methods("GET")
	api.HandleFunc("/projects/{id:[0-9]+}/measurements", h.AddEntry).Methods("POST")
	api.HandleFunc("/projects/{id:[0-9]+}/measurements/export", h.ExportMeasurements).Methods("GET")
	api.HandleFunc("/projects/{id:[0-9]+}/area-by-gauge", h.AreaByGauge).Methods("GET")
	api.HandleFunc("/measurements/{id:[0-9]+}", h.EditEntry).Methods("PUT")
	api.HandleFunc("/measurements/{id:[0-9]+}", h.DeleteEntry).Methods("DELETE")

	// Production
	api.HandleFunc("/projects/{id:[0-9]+}/production", h.GetProduction).Methods("GET")
	api.HandleFunc("/projects/{id:[0-9]+}/production", h.SetProduction).Methods("PUT")
	api.HandleFunc("/production", h.ProductionView).Methods("GET")

	// Summary
	api.HandleFunc("/projects/{id:[0-9]+}/summary", h.GetSummary).Methods("GET")
	api.HandleFunc("/projects/{id:[0-9]+}/summary/export", h.ExportSummary).Methods("GET")
}

type crudHandlers struct {
	getAll http.HandlerFunc
	names  http.HandlerFunc
	create http.HandlerFunc
	getOne http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

// registerCRUDRoutes registers standard CRUD routes for a resource. With
// adminWrites, POST and DELETE require the admin role.
func registerCRUDRoutes(router *mux.Router, path string, adminWrites bool, h crudHandlers) {
	guard := func(next http.Handler) http.Handler { return next }
	if adminWrites {
		guard = func(next http.Handler) http.Handler {
			return middleware.RequireRole([]string{models.RoleAdmin}, next)
		}
	}

	// GET all
	router.Handle(path, h.getAll).Methods("GET")

	// GET names
	if h.names != nil {
		router.Handle(path+"/names", h.names).Methods("GET")
	}

	// POST create
	router.Handle(path, guard(h.create)).Methods("POST")

	// GET one by ID
	router.Handle(path+"/{id:[0-9]+}", h.getOne).Methods("GET")

	// PUT update
	router.Handle(path+"/{id:[0-9]+}", h.update).Methods("PUT")

	// DELETE
	router.Handle(path+"/{id:[0-9]+}", guard(h.delete)).Methods("DELETE")
}

func serveSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "swagger doc unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
