package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"xiangqi/internal/record"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// Handler 持有对局管理和存档，负责 /api/* 路由
type Handler struct {
	games   *game.Manager
	records record.Store
	log     zerolog.Logger
}

func NewHandler(games *game.Manager, records record.Store, log zerolog.Logger) *Handler {
	return &Handler{games: games, records: records, log: log}
}

// 错误码：规则拒绝和终局后落子 400，找不到 404，其他 500
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound), errors.Is(err, record.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xiangqi.ErrEmptyOrigin),
		errors.Is(err, xiangqi.ErrWrongSide),
		errors.Is(err, xiangqi.ErrIllegalDestination),
		errors.Is(err, xiangqi.ErrSelfCheck),
		errors.Is(err, xiangqi.ErrGeneralsFacing),
		errors.Is(err, xiangqi.ErrInvalidFEN),
		errors.Is(err, xiangqi.ErrInvalidSquare),
		errors.Is(err, record.ErrInvalidVisibility),
		errors.Is(err, game.ErrGameOver):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(ctx *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("rid", GetRequestID(ctx)).Str("path", ctx.FullPath()).Msg("request failed")
	}
	ctx.JSON(code, gin.H{"error": err.Error()})
}

func (h *Handler) bind(ctx *gin.Context, v any) bool {
	if err := ctx.ShouldBindJSON(v); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad json: " + err.Error()})
		return false
	}
	return true
}

func (h *Handler) NewGame(ctx *gin.Context) {
	var req NewGameRequest
	// body 可以为空
	if ctx.Request.ContentLength > 0 && !h.bind(ctx, &req) {
		return
	}

	var g *game.GameState
	if req.FEN == "" {
		g = h.games.NewGame()
	} else {
		var err error
		if g, err = h.games.NewGameFromFEN(req.FEN); err != nil {
			h.fail(ctx, err)
			return
		}
	}
	ctx.JSON(http.StatusOK, stateResponse(g, g.Snapshot()))
}

func (h *Handler) State(ctx *gin.Context) {
	var req StateRequest
	if !h.bind(ctx, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(g, g.Snapshot()))
}

func (h *Handler) Play(ctx *gin.Context) {
	var req PlayRequest
	if !h.bind(ctx, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	mv := dtoToMove(req.Move)
	snap, err := g.Play(mv)
	if err != nil {
		h.log.Debug().Str("game", g.ID).Str("move", mv.ICCS()).Err(err).Msg("move rejected")
		h.fail(ctx, err)
		return
	}
	if snap.Status != xiangqi.StatusOngoing {
		h.log.Info().Str("game", g.ID).Str("status", snap.Status.String()).
			Str("winner", snap.Winner.String()).Int("plies", len(snap.History)).Msg("game finished")
	}
	ctx.JSON(http.StatusOK, stateResponse(g, snap))
}

func (h *Handler) Candidates(ctx *gin.Context) {
	var req CandidatesRequest
	if !h.bind(ctx, &req) {
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, CandidatesResponse{
		From:  req.From,
		Moves: movesToDTO(g.Candidates(dtoToPosition(req.From))),
	})
}

func (h *Handler) Save(ctx *gin.Context) {
	var req SaveRequest
	if !h.bind(ctx, &req) {
		return
	}
	vis, err := record.ParseVisibility(req.Visibility)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	rec, err := g.Record(req.Username, vis)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	if err := h.records.Save(ctx.Request.Context(), rec); err != nil {
		h.fail(ctx, err)
		return
	}
	h.log.Info().Str("game", g.ID).Str("record", rec.ID).Str("user", rec.Username).Msg("game saved")
	ctx.JSON(http.StatusOK, SaveResponse{RecordID: rec.ID, Visibility: string(rec.Visibility)})
}

// Load 读档后开一局新的，接着存档的最后局面往下走
func (h *Handler) Load(ctx *gin.Context) {
	var req LoadRequest
	if !h.bind(ctx, &req) {
		return
	}
	rec, err := h.records.Load(ctx.Request.Context(), req.RecordID)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	g, err := h.games.Restore(rec)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(g, g.Snapshot()))
}

func (h *Handler) Records(ctx *gin.Context) {
	var req RecordsRequest
	if !h.bind(ctx, &req) {
		return
	}
	list, err := h.records.List(ctx.Request.Context(), record.Filter{
		Username:   req.Username,
		PublicOnly: req.PublicOnly,
	})
	if err != nil {
		h.fail(ctx, err)
		return
	}
	if list == nil {
		list = []record.Summary{}
	}
	ctx.JSON(http.StatusOK, gin.H{"records": list})
}

func (h *Handler) Visibility(ctx *gin.Context) {
	var req VisibilityRequest
	if !h.bind(ctx, &req) {
		return
	}
	vis, err := record.ParseVisibility(req.Visibility)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	if err := h.records.SetVisibility(ctx.Request.Context(), req.RecordID, vis); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"record_id": req.RecordID, "visibility": string(vis)})
}

func (h *Handler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "games": h.games.Len()})
}
