package httpserver

import (
	"strconv"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 前端用的坐标：row 0 是黑方底线
type PositionDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// 前端用的招法结构，iccs 只是方便调试看
type MoveDTO struct {
	From PositionDTO `json:"from"`
	To   PositionDTO `json:"to"`
	ICCS string      `json:"iccs,omitempty"`
}

// NewGame 请求；fen 为空就是标准开局
type NewGameRequest struct {
	FEN string `json:"fen"`
}

// State 请求：前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

// Play 请求
type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// Candidates 请求：点了某个棋子，要它能去哪
type CandidatesRequest struct {
	GameID string      `json:"game_id"`
	From   PositionDTO `json:"from"`
}

type SaveRequest struct {
	GameID     string `json:"game_id"`
	Username   string `json:"username"`
	Visibility string `json:"visibility"` // private / public，空当 private
}

type LoadRequest struct {
	RecordID string `json:"record_id"`
}

type RecordsRequest struct {
	Username   string `json:"username"`
	PublicOnly bool   `json:"public_only"`
}

type VisibilityRequest struct {
	RecordID   string `json:"record_id"`
	Visibility string `json:"visibility"`
}

// StateResponse new_game / state / play / load 都返回这个。
// to_move 0=红 1=黑；winner 为 -1 表示还没分胜负
type StateResponse struct {
	GameID     string     `json:"game_id"`
	Position   string     `json:"position"`
	Board      [][]string `json:"board"`
	ToMove     int        `json:"to_move"`
	Status     string     `json:"status"`
	Winner     int        `json:"winner"`
	InCheck    bool       `json:"in_check"`
	LegalMoves []MoveDTO  `json:"legal_moves"`
	History    []MoveDTO  `json:"history"`
	Hash       string     `json:"hash"`
}

type CandidatesResponse struct {
	From  PositionDTO `json:"from"`
	Moves []MoveDTO   `json:"moves"`
}

type SaveResponse struct {
	RecordID   string `json:"record_id"`
	Visibility string `json:"visibility"`
}

func sideToInt(s xiangqi.Side) int {
	switch s {
	case xiangqi.Red:
		return 0
	case xiangqi.Black:
		return 1
	default:
		return -1
	}
}

func positionToDTO(p xiangqi.Position) PositionDTO {
	return PositionDTO{Row: p.Row, Col: p.Col}
}

func dtoToPosition(p PositionDTO) xiangqi.Position {
	return xiangqi.NewPosition(p.Row, p.Col)
}

func dtoToMove(m MoveDTO) xiangqi.Move {
	return xiangqi.Move{From: dtoToPosition(m.From), To: dtoToPosition(m.To)}
}

func moveToDTO(m xiangqi.Move) MoveDTO {
	return MoveDTO{From: positionToDTO(m.From), To: positionToDTO(m.To), ICCS: m.ICCS()}
}

func movesToDTO(ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// boardToDTO 每格用 ShortCode，空格是 ""
func boardToDTO(b *xiangqi.Board) [][]string {
	rows := make([][]string, xiangqi.Rows)
	for r := 0; r < xiangqi.Rows; r++ {
		rows[r] = make([]string, xiangqi.Cols)
		for c := 0; c < xiangqi.Cols; c++ {
			if pc := b.Piece(r, c); !pc.IsEmpty() {
				rows[r][c] = pc.ShortCode()
			}
		}
	}
	return rows
}

func stateResponse(g *game.GameState, snap game.Snapshot) StateResponse {
	return StateResponse{
		GameID:     g.ID,
		Position:   snap.FEN,
		Board:      boardToDTO(snap.Board),
		ToMove:     sideToInt(snap.Turn),
		Status:     snap.Status.String(),
		Winner:     sideToInt(snap.Winner),
		InCheck:    snap.InCheck,
		LegalMoves: movesToDTO(snap.LegalMoves),
		History:    movesToDTO(snap.History),
		Hash:       strconv.FormatUint(snap.Hash, 16),
	}
}
