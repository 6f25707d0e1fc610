package xiangqi

// PseudoLegalMoves 按棋子类型分派走法生成；不考虑自己的将是否被将军。
// from 不在棋盘上时返回空
func (p Piece) PseudoLegalMoves(b *Board, from Position) []Move {
	if p == NoPiece || !onBoard(from.Row, from.Col) {
		return nil
	}
	var moves []Move
	switch p.Type() {
	case PieceGeneral:
		genGeneralMoves(b, p, from, &moves)
	case PieceAdvisor:
		genAdvisorMoves(b, p, from, &moves)
	case PieceElephant:
		genElephantMoves(b, p, from, &moves)
	case PieceChariot:
		genChariotMoves(b, p, from, &moves)
	case PieceHorse:
		genHorseMoves(b, p, from, &moves)
	case PieceCannon:
		genCannonMoves(b, p, from, &moves)
	case PieceSoldier:
		genSoldierMoves(b, p, from, &moves)
	}
	return moves
}

// PseudoLegalMoves 取 from 上的棋子生成伪合法走法
func (b *Board) PseudoLegalMoves(from Position) []Move {
	return b.PieceAt(from).PseudoLegalMoves(b, from)
}

// PseudoMovesForSide 生成指定一方的伪合法走法
func (b *Board) PseudoMovesForSide(side Side) []Move {
	var moves []Move
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b.grid[r][c]
			if pc == NoPiece || pc.Side() != side {
				continue
			}
			moves = append(moves, pc.PseudoLegalMoves(b, Position{Row: r, Col: c})...)
		}
	}
	return moves
}

// checkSafety 在棋盘副本上试走，判断是否送将或王对脸。live 棋盘不动
func (b *Board) checkSafety(m Move) error {
	pc := b.grid[m.From.Row][m.From.Col]
	side := pc.Side()

	scratch := *b
	scratch.grid[m.To.Row][m.To.Col] = pc
	scratch.grid[m.From.Row][m.From.Col] = NoPiece

	if scratch.generalsFacing() {
		return ErrGeneralsFacing
	}
	if scratch.InCheck(side) {
		return ErrSelfCheck
	}
	return nil
}

// LegalMoves from 上棋子的合法走法（已过滤送将、王对脸）。
// 不是当前行棋方的子也照样生成，方便界面提示
func (b *Board) LegalMoves(from Position) []Move {
	pseudo := b.PseudoLegalMoves(from)
	out := pseudo[:0]
	for _, mv := range pseudo {
		if b.checkSafety(mv) == nil {
			out = append(out, mv)
		}
	}
	return out
}

// AllLegalMoves 当前行棋方的全部合法走法
func (b *Board) AllLegalMoves() []Move {
	pseudo := b.PseudoMovesForSide(b.turn)
	out := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		if b.checkSafety(mv) == nil {
			out = append(out, mv)
		}
	}
	return out
}

// ApplyLegalMove 在 ApplyMove 的基础上再拒绝送将和王对脸
func (b *Board) ApplyLegalMove(m Move) error {
	if err := b.validate(m); err != nil {
		return err
	}
	if err := b.checkSafety(m); err != nil {
		return err
	}
	b.move(m.From, m.To)
	return nil
}

type Status int8

const (
	StatusOngoing Status = iota
	StatusCheckmate
	StatusStalemate
	StatusGeneralCaptured
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusGeneralCaptured:
		return "general_captured"
	}
	return "unknown"
}

// Status 以当前行棋方的视角判断对局状态。象棋里困毙也算输
func (b *Board) Status() Status {
	if _, ok := b.FindGeneral(b.turn); !ok {
		return StatusGeneralCaptured
	}
	if len(b.AllLegalMoves()) > 0 {
		return StatusOngoing
	}
	if b.InCheck(b.turn) {
		return StatusCheckmate
	}
	return StatusStalemate
}

// Winner 对局结束时返回胜方，否则 NoSide
func (b *Board) Winner() Side {
	if b.Status() == StatusOngoing {
		return NoSide
	}
	return b.turn.Opposite()
}
