package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ameyak/degrees/backend/internal/domain"
	"github.com/ameyak/degrees/backend/internal/graph"
	"github.com/ameyak/degrees/backend/internal/resolve"
	"github.com/ameyak/degrees/backend/internal/search"
	"github.com/ameyak/degrees/backend/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.SeparationService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.SeparationService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

type personResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Birth string `json:"birth,omitempty"`
}

type personListResponse struct {
	Items      []personSummaryResponse `json:"items"`
	Pagination paginationMeta          `json:"pagination"`
}

type personSummaryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Birth      string `json:"birth,omitempty"`
	MovieCount int    `json:"movieCount"`
}

type paginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
}

type costarLinkResponse struct {
	MovieID  string `json:"movieId"`
	PersonID string `json:"personId"`
}

type personDetailResponse struct {
	Person  personResponse       `json:"person"`
	Costars []costarLinkResponse `json:"costars"`
}

type pathStepResponse struct {
	MovieID    string `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PersonID   string `json:"personId"`
	PersonName string `json:"personName"`
}

type pathResponse struct {
	Connected bool               `json:"connected"`
	Source    personResponse     `json:"source"`
	Target    personResponse     `json:"target"`
	Degrees   int                `json:"degrees"`
	Steps     []pathStepResponse `json:"steps"`
}

type ambiguousNameResponse struct {
	Error      string           `json:"error"`
	Name       string           `json:"name"`
	Candidates []personResponse `json:"candidates"`
}

func (h *APIHandlers) handlePeople(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	page := parseInt(query.Get("page"), 1)
	if page <= 0 {
		page = 1
	}
	pageSize := parseInt(query.Get("pageSize"), 50)
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}

	result, err := h.service.ListPeople(r.Context(), domain.ListPeopleOptions{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
		Search: query.Get("search"),
	})
	if err != nil {
		h.logger.Error("failed to list people", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list people")
		return
	}

	response := personListResponse{
		Items: make([]personSummaryResponse, 0, len(result.Items)),
		Pagination: paginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: result.Total,
		},
	}
	for _, item := range result.Items {
		response.Items = append(response.Items, personSummaryResponse{
			ID:         item.ID,
			Name:       item.Name,
			Birth:      item.Birth,
			MovieCount: item.MovieCount,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handlePersonByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	personID := strings.TrimPrefix(r.URL.Path, "/people/")
	personID = strings.Trim(personID, "/")
	if personID == "" {
		writeError(w, http.StatusBadRequest, "person ID is required")
		return
	}

	person, err := h.service.PersonByID(r.Context(), personID)
	if err != nil {
		if errors.Is(err, graph.ErrUnknownPerson) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("person %s not found", personID))
			return
		}
		h.logger.Error("failed to fetch person", "error", err, "personId", personID)
		writeError(w, http.StatusInternalServerError, "failed to fetch person")
		return
	}

	links, err := h.service.Neighbors(r.Context(), personID)
	if err != nil {
		h.logger.Error("failed to fetch costars", "error", err, "personId", personID)
		writeError(w, http.StatusInternalServerError, "failed to fetch costars")
		return
	}

	response := personDetailResponse{
		Person:  toPersonResponse(person),
		Costars: make([]costarLinkResponse, 0, len(links)),
	}
	for _, link := range links {
		response.Costars = append(response.Costars, costarLinkResponse{
			MovieID:  link.MovieID,
			PersonID: link.PersonID,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handlePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	source, ok := h.resolveEndpoint(w, r, query.Get("source"), "source")
	if !ok {
		return
	}
	target, ok := h.resolveEndpoint(w, r, query.Get("target"), "target")
	if !ok {
		return
	}

	sep, err := h.service.SeparationBetween(r.Context(), source.ID, target.ID)
	if err != nil {
		if errors.Is(err, search.ErrNoPath) {
			respondJSON(w, http.StatusOK, pathResponse{
				Connected: false,
				Source:    toPersonResponse(source),
				Target:    toPersonResponse(target),
				Steps:     []pathStepResponse{},
			})
			return
		}
		h.logger.Error("shortest path failed", "error", err, "source", source.ID, "target", target.ID)
		writeError(w, http.StatusInternalServerError, "shortest path failed")
		return
	}

	response := pathResponse{
		Connected: true,
		Source:    personResponse{ID: sep.SourceID, Name: sep.SourceName},
		Target:    personResponse{ID: sep.TargetID, Name: sep.TargetName},
		Degrees:   sep.Degrees,
		Steps:     make([]pathStepResponse, 0, len(sep.Steps)),
	}
	for _, step := range sep.Steps {
		response.Steps = append(response.Steps, pathStepResponse{
			MovieID:    step.MovieID,
			MovieTitle: step.MovieTitle,
			PersonID:   step.PersonID,
			PersonName: step.PersonName,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

// resolveEndpoint turns a query parameter into a person: an exact ID wins,
// otherwise the value is treated as a name which must resolve unambiguously.
// On failure the response has already been written and ok is false.
func (h *APIHandlers) resolveEndpoint(w http.ResponseWriter, r *http.Request, value, param string) (domain.Person, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", param))
		return domain.Person{}, false
	}

	person, err := h.service.PersonByID(r.Context(), value)
	if err == nil {
		return person, true
	}
	if !errors.Is(err, graph.ErrUnknownPerson) {
		h.logger.Error("failed to fetch person", "error", err, "param", param)
		writeError(w, http.StatusInternalServerError, "failed to resolve "+param)
		return domain.Person{}, false
	}

	person, err = h.service.ResolveOne(r.Context(), value)
	if err == nil {
		return person, true
	}

	var ambiguous *resolve.AmbiguousNameError
	switch {
	case errors.Is(err, resolve.ErrPersonNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s %q not found", param, value))
	case errors.As(err, &ambiguous):
		candidates := make([]personResponse, 0, len(ambiguous.Candidates))
		for _, candidate := range ambiguous.Candidates {
			candidates = append(candidates, toPersonResponse(candidate))
		}
		respondJSON(w, http.StatusBadRequest, ambiguousNameResponse{
			Error:      fmt.Sprintf("%s name is ambiguous, pass one of the candidate IDs", param),
			Name:       value,
			Candidates: candidates,
		})
	default:
		h.logger.Error("name resolution failed", "error", err, "param", param)
		writeError(w, http.StatusInternalServerError, "failed to resolve "+param)
	}
	return domain.Person{}, false
}

func toPersonResponse(person domain.Person) personResponse {
	return personResponse{ID: person.ID, Name: person.Name, Birth: person.Birth}
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
