package analysis

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"rhapsody/internal/adapters"
	"rhapsody/internal/bootstrap"
	errs "rhapsody/internal/errors"
	"rhapsody/internal/httpresponse"
	repo "rhapsody/internal/repository"
	analysisuc "rhapsody/internal/usecase/analysis"
	"rhapsody/internal/utils"
)

// maxSGFUploadBytes bounds the multipart form in memory.
const maxSGFUploadBytes = 10 << 20

type AnalysisHandler struct {
	cfg        bootstrap.Config
	log        *zap.SugaredLogger
	analysisUC *analysisuc.AnalysisUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewAnalysisHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis) *AnalysisHandler {
	store := repo.NewAnalysisRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)
	return &AnalysisHandler{
		cfg:        cfg,
		log:        log,
		analysisUC: analysisuc.NewAnalysisUseCase(store, log),
	}
}

type uploadResponse struct {
	Message string `json:"message"`
	GameID  string `json:"game_id"`
}

// HandleUploadSGF godoc
// @Summary Upload and analyze an SGF game record
// @Accept mpfd
// @Produce json
// @Param sgf_file formData file true "SGF file"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /upload_sgf [post]
func (h *AnalysisHandler) HandleUploadSGF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.log.Error("UploadSGF: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	sgfText, err := readSGFUpload(r)
	if err != nil {
		h.log.Error("UploadSGF: no usable SGF payload: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "No SGF file provided"})
		return
	}

	h.analyzeAndRespond(w, r, "UploadSGF", sgfText)
}

// readSGFUpload pulls SGF text out of a multipart sgf_file field, or
// out of the raw request body when the client skipped the form.
func readSGFUpload(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxSGFUploadBytes); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("sgf_file")
		if err != nil {
			return "", err
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	raw, err := utils.ReadRequestBody(r)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", errs.ErrMalformedMoveSequence
	}
	return string(raw), nil
}

type analyzeRequest struct {
	SGFText string `json:"sgf_text"`
}

// HandleAnalyzeJSON godoc
// @Summary Analyze SGF text posted as a JSON document
// @Accept json
// @Produce json
// @Param request body analyzeRequest true "SGF text"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /analyze [post]
func (h *AnalysisHandler) HandleAnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("AnalyzeJSON: bad request body: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "Invalid JSON body"})
		return
	}
	if req.SGFText == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "sgf_text is required"})
		return
	}

	h.analyzeAndRespond(w, r, "AnalyzeJSON", req.SGFText)
}

func (h *AnalysisHandler) analyzeAndRespond(w http.ResponseWriter, r *http.Request, op, sgfText string) {
	gameID, reports, err := h.analysisUC.AnalyzeSGF(r.Context(), sgfText)
	if err != nil {
		if errors.Is(err, errs.ErrMalformedMoveSequence) {
			h.log.Errorf("%s: malformed SGF: %v", op, err)
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "Failed to parse SGF: " + err.Error()})
			return
		}
		h.log.Errorf("%s: analysis failed: %v", op, err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	h.log.Infof("%s: game %s analyzed, %d reports", op, gameID, len(reports))
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, uploadResponse{
		Message: "SGF uploaded and analyzed successfully",
		GameID:  gameID,
	})
}

// HandleGetAnalysis godoc
// @Summary Fetch the stored analysis log for a game
// @Produce json
// @Param game_id path string true "Game id"
// @Success 200 {array} analysis.MoveReport
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /analysis/{game_id} [get]
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game_id")
	if gameID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_id is required"})
		return
	}

	reports, err := h.analysisUC.GetAnalysis(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, errs.ErrAnalysisNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "Game analysis not found"})
			return
		}
		h.log.Error("GetAnalysis: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, reports)
}

// HandleStreamAnalysis replays a stored report log over a websocket,
// one report per frame, in move order. The renderer paces itself; the
// server just feeds frames.
func (h *AnalysisHandler) HandleStreamAnalysis(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game_id")

	reports, err := h.analysisUC.GetAnalysis(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, errs.ErrAnalysisNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "Game analysis not found"})
			return
		}
		h.log.Error("StreamAnalysis: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("StreamAnalysis: upgrade error: ", err)
		return
	}
	defer conn.Close()

	for _, report := range reports {
		if err := conn.WriteJSON(report); err != nil {
			h.log.Error("StreamAnalysis: write error: ", err)
			return
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of game"))
}

// HandleAnalysisSGF godoc
// @Summary Download the analyzed game as a normalized SGF file
// @Produce plain
// @Param game_id path string true "Game id"
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /analysis/{game_id}/sgf [get]
func (h *AnalysisHandler) HandleAnalysisSGF(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game_id")

	reports, err := h.analysisUC.GetAnalysis(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, errs.ErrAnalysisNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "Game analysis not found"})
			return
		}
		h.log.Error("AnalysisSGF: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+gameID+".sgf\"")
	_, _ = w.Write([]byte(analysisuc.ReportSGF(reports)))
}

// HandleAnalysisPDF godoc
// @Summary Download the analysis log as a PDF score sheet
// @Produce application/pdf
// @Param game_id path string true "Game id"
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /analysis/{game_id}/pdf [get]
func (h *AnalysisHandler) HandleAnalysisPDF(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game_id")

	reports, err := h.analysisUC.GetAnalysis(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, errs.ErrAnalysisNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "Game analysis not found"})
			return
		}
		h.log.Error("AnalysisPDF: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	pdfBytes, err := analysisuc.ReportPDF(gameID, reports)
	if err != nil {
		h.log.Error("AnalysisPDF: render error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+gameID+".pdf\"")
	_, _ = w.Write(pdfBytes)
}
