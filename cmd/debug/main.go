package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", "", "position to inspect (default: opening)")
	skeleton := flag.Bool("skeleton", false, "use the generals-and-chariots layout")
	depth := flag.Int("perft", 0, "run perft to this depth")
	workers := flag.Int("workers", runtime.NumCPU(), "perft workers")
	flag.Parse()

	b := xiangqi.NewBoard()
	switch {
	case *fen != "":
		var err error
		if b, err = xiangqi.DecodeFEN(*fen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case *skeleton:
		b = xiangqi.NewSkeletonBoard()
	}

	fmt.Println(b)
	fmt.Println("FEN:", b.FEN())
	fmt.Printf("Hash: %016x\n", b.Hash())
	fmt.Println("Pseudo legal moves:", len(b.PseudoMovesForSide(b.Turn())))
	legal := b.AllLegalMoves()
	fmt.Println("Legal moves:", len(legal))
	for _, m := range legal {
		fmt.Printf("  %s %s\n", m.ICCS(), m)
	}
	fmt.Println("In check:", b.InCheck(b.Turn()), "Generals facing:", b.GeneralsFacing())
	fmt.Println("Status:", b.Status())

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		n, err := xiangqi.PerftParallel(context.Background(), b, d, *workers)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("perft(%d) = %d  %v\n", d, n, time.Since(start))
	}
}
