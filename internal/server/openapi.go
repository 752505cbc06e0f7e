package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by endpoints that only acknowledge.
type StatusResponse struct {
	Status string `json:"status"`
}

type inscritoPath struct {
	ID string `path:"id"`
}

type documentPath struct {
	ID   string `path:"id"`
	Kind string `path:"kind" enum:"comprobante,ci_frente,ci_reverso,autorizacion"`
}

type categoryPath struct {
	CategoryID string `path:"categoryID"`
}

type listInscritosQuery struct {
	CategoryID string `path:"categoryID"`
	Q          string `query:"q" description:"Matches name, CI, bib, team and community (case-insensitive)."`
	Status     string `query:"status" enum:"complete,bib_pending,docs_incomplete"`
	Page       int    `query:"page" minimum:"1"`
}

type updateInscritoRequest struct {
	ID        string `path:"id"`
	Categoria string `query:"categoria" description:"Category the admin is viewing; defaults to the current one."`
	inscritos.Update
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Gestionar Carrera Admin API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Admin API for race registrations: search, filter, paginate and edit participants.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the status of libSQL, the remote API and the optional Redis cache.")
	getHealthz.AddRespStructure(map[string]StatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]StatusResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(StatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/categorias
	listCategories, _ := r.NewOperationContext(http.MethodGet, "/api/admin/categorias")
	listCategories.SetSummary("List categories")
	listCategories.SetDescription("Race categories as known by the remote API. Requires admin_session cookie.")
	listCategories.AddRespStructure([]inscritos.Category{}, openapi.WithHTTPStatus(http.StatusOK))
	listCategories.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	listCategories.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(listCategories)

	// GET /api/admin/equipos
	listTeams, _ := r.NewOperationContext(http.MethodGet, "/api/admin/equipos")
	listTeams.SetSummary("List teams")
	listTeams.SetDescription("Teams for the edit form, sorted by name. Requires admin_session cookie.")
	listTeams.AddRespStructure([]inscritos.Team{}, openapi.WithHTTPStatus(http.StatusOK))
	listTeams.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	listTeams.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(listTeams)

	// GET /api/admin/categorias/{categoryID}/inscritos
	listInscritos, _ := r.NewOperationContext(http.MethodGet, "/api/admin/categorias/{categoryID}/inscritos")
	listInscritos.SetSummary("List participants")
	listInscritos.SetDescription("One page of the category's participants after search, status filter and sort " +
		"(no bib first, then by full name). Requires admin_session cookie.")
	listInscritos.AddReqStructure(listInscritosQuery{})
	listInscritos.AddRespStructure(InscritosPage{}, openapi.WithHTTPStatus(http.StatusOK))
	listInscritos.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	listInscritos.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	listInscritos.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(listInscritos)

	// GET /api/admin/categorias/{categoryID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/admin/categorias/{categoryID}/events")
	getEvents.SetSummary("SSE change stream")
	getEvents.SetDescription("Server-Sent Events with inscrito_updated, inscrito_removed and inscrito_deleted " +
		"for the category. Requires admin_session cookie.")
	getEvents.AddReqStructure(categoryPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/admin/inscritos/{id}
	getInscrito, _ := r.NewOperationContext(http.MethodGet, "/api/admin/inscritos/{id}")
	getInscrito.SetSummary("Get participant")
	getInscrito.SetDescription("One participant with age and completeness badge. Requires admin_session cookie.")
	getInscrito.AddReqStructure(inscritoPath{})
	getInscrito.AddRespStructure(InscritoItem{}, openapi.WithHTTPStatus(http.StatusOK))
	getInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getInscrito)

	// PUT /api/admin/inscritos/{id}
	updateInscrito, _ := r.NewOperationContext(http.MethodPut, "/api/admin/inscritos/{id}")
	updateInscrito.SetSummary("Update participant")
	updateInscrito.SetDescription("Replaces the editable fields. leftCategory tells whether the participant " +
		"moved out of the viewed category. Requires admin_session cookie.")
	updateInscrito.AddReqStructure(updateInscritoRequest{})
	updateInscrito.AddRespStructure(UpdateInscritoResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	updateInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	updateInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateInscrito)

	// DELETE /api/admin/inscritos/{id}
	deleteInscrito, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/inscritos/{id}")
	deleteInscrito.SetSummary("Delete participant")
	deleteInscrito.SetDescription("Deletes the registration. Requires admin_session cookie.")
	deleteInscrito.AddReqStructure(inscritoPath{})
	deleteInscrito.AddRespStructure(StatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	deleteInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteInscrito.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteInscrito)

	// GET /api/admin/inscritos/{id}/documentos/{kind}
	getDocument, _ := r.NewOperationContext(http.MethodGet, "/api/admin/inscritos/{id}/documentos/{kind}")
	getDocument.SetSummary("Document URL")
	getDocument.SetDescription("Short-lived signed URL for one of the participant's documents. Requires admin_session cookie.")
	getDocument.AddReqStructure(documentPath{})
	getDocument.AddRespStructure(DocumentURLResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getDocument.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getDocument.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getDocument.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getDocument)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
