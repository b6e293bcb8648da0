package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
	"github.com/iza-pos/pos-backend-go/internal/handler/http/response"
)

type ArchiveHandler interface {
	// Monthly archive pipeline
	Generate(w http.ResponseWriter, r *http.Request)

	// Archive metadata management
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// Post-archive source cleanup
	PurgeSource(w http.ResponseWriter, r *http.Request)

	// Spreadsheet export
	SalesWorkbook(w http.ResponseWriter, r *http.Request)
}

type archiveHandlerImpl struct {
	archiveService archive.Service
}

func NewArchiveHandler(archiveService archive.Service) ArchiveHandler {
	return &archiveHandlerImpl{
		archiveService: archiveService,
	}
}

// Generate handles POST /archives/generate
func (h *archiveHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req archive.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result := h.archiveService.GenerateMonthlyArchive(ctx, req)
	if !result.Success {
		// The pipeline reports failures as display-ready messages, not as
		// structured error codes.
		response.BadRequest(w, result.Message, nil)
		return
	}

	response.Created(w, result.Message, result)
}

// List handles GET /archives
func (h *archiveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	archives, err := h.archiveService.ListArchives(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, archives)
}

// Delete handles DELETE /archives/{archiveID}
func (h *archiveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	archiveID := chi.URLParam(r, "archiveID")
	if err := h.archiveService.DeleteArchive(ctx, archiveID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Archive deleted", nil)
}

// PurgeSource handles POST /archives/purge-source
func (h *archiveHandlerImpl) PurgeSource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req archive.PurgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result, err := h.archiveService.PurgeArchivedSourceData(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SalesWorkbook handles GET /reports/sales/workbook
func (h *archiveHandlerImpl) SalesWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	workbook, filename, err := h.archiveService.SalesWorkbook(ctx, archive.WorkbookRequest{
		Month: month,
		Year:  year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}
