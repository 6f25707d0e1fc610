package xiangqi

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type perftKey struct {
	hash  uint64
	depth int
}

// Perft 统计 depth 层内的合法走法路径数，用来校验走法生成
func Perft(b *Board, depth int) uint64 {
	n, _ := perft(context.Background(), b.Clone(), depth, make(map[perftKey]uint64))
	return n
}

// PerftParallel 根节点的每一步分给一个 worker，各自用独立的棋盘副本和缓存
func PerftParallel(ctx context.Context, b *Board, depth, workers int) (uint64, error) {
	if depth <= 1 {
		return Perft(b, depth), nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var total uint64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, mv := range b.AllLegalMoves() {
		mv := mv
		g.Go(func() error {
			child := b.Clone()
			child.move(mv.From, mv.To)
			n, err := perft(gctx, child, depth-1, make(map[perftKey]uint64))
			if err != nil {
				return err
			}
			atomic.AddUint64(&total, n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}

func perft(ctx context.Context, b *Board, depth int, cache map[perftKey]uint64) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	moves := b.AllLegalMoves()
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	key := perftKey{hash: b.hash, depth: depth}
	if n, ok := cache[key]; ok {
		return n, nil
	}

	var total uint64
	for _, mv := range moves {
		child := *b
		child.move(mv.From, mv.To)
		n, err := perft(ctx, &child, depth-1, cache)
		if err != nil {
			return 0, err
		}
		total += n
	}
	cache[key] = total
	return total, nil
}
