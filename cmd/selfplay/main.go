package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"xiangqi/internal/config"
	"xiangqi/internal/logx"
	"xiangqi/internal/record"
	"xiangqi/internal/xiangqi"
)

type result struct {
	moves  []xiangqi.Move
	status xiangqi.Status
	winner xiangqi.Side
}

// playGame 双方都随机走合法招，直到分出胜负或走满 maxPlies
func playGame(rng *rand.Rand, start *xiangqi.Board, maxPlies int) (result, error) {
	b := start.Clone()
	var res result
	for len(res.moves) < maxPlies {
		legal := b.AllLegalMoves()
		if len(legal) == 0 {
			break
		}
		mv := legal[rng.Intn(len(legal))]
		if err := b.ApplyLegalMove(mv); err != nil {
			return res, fmt.Errorf("ply %d %s: %w", len(res.moves)+1, mv.ICCS(), err)
		}
		res.moves = append(res.moves, mv)
	}
	res.status = b.Status()
	res.winner = b.Winner()
	return res, nil
}

func main() {
	totalGames := flag.Int("games", 10, "number of games to play")
	maxPlies := flag.Int("maxplies", 300, "stop a game after this many plies")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	fen := flag.String("fen", "", "start position (default: opening)")
	save := flag.Bool("save", false, "save every game to the record store")
	user := flag.String("user", "selfplay", "username for saved records")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logx.New(cfg.Log.Level, cfg.Log.Console)

	start := xiangqi.NewBoard()
	if *fen != "" {
		if start, err = xiangqi.DecodeFEN(*fen); err != nil {
			log.Fatal().Err(err).Msg("bad fen")
		}
	}

	ctx := context.Background()
	var store record.Store
	if *save {
		if store, err = record.Open(ctx, cfg.Store); err != nil {
			log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("open record store")
		}
		defer store.Close()
	}

	rng := rand.New(rand.NewSource(*seed))
	log.Info().Int64("seed", *seed).Int("games", *totalGames).Msg("selfplay started")

	wins := map[xiangqi.Side]int{}
	unfinished := 0
	for g := 0; g < *totalGames; g++ {
		t0 := time.Now()
		res, err := playGame(rng, start, *maxPlies)
		if err != nil {
			log.Fatal().Err(err).Int("game", g+1).Msg("selfplay failed")
		}
		if res.status == xiangqi.StatusOngoing {
			unfinished++
		} else {
			wins[res.winner]++
		}

		ev := log.Info().Int("game", g+1).Int("plies", len(res.moves)).
			Str("status", res.status.String()).Dur("took", time.Since(t0))
		if res.winner != xiangqi.NoSide {
			ev = ev.Str("winner", res.winner.String())
		}
		ev.Msg("game finished")

		if store != nil {
			saveGame(ctx, log, store, *user, start, res.moves)
		}
	}

	fmt.Printf("Red wins: %d, Black wins: %d, unfinished: %d\n", wins[xiangqi.Red], wins[xiangqi.Black], unfinished)
}

func saveGame(ctx context.Context, log zerolog.Logger, store record.Store, user string, start *xiangqi.Board, moves []xiangqi.Move) {
	rec, err := record.New(user, start, moves)
	if err != nil {
		log.Error().Err(err).Msg("build record")
		return
	}
	if err := store.Save(ctx, rec); err != nil {
		log.Error().Err(err).Msg("save record")
		return
	}
	log.Debug().Str("record", rec.ID).Msg("record saved")
}
