// Seeds the rooms collection from a JSON file. Rooms are managed
// out-of-band; the API only ever patches them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"oldbaku_hotel/internal/adapters/observability"
	"oldbaku_hotel/internal/domain"
	"oldbaku_hotel/internal/shared"
	"oldbaku_hotel/internal/storage/jsonfile"
)

func main() {
	file := flag.String("file", "rooms.json", "path to the rooms seed file")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read seed file failed")
	}
	var rooms []domain.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		log.Fatal().Err(err).Msg("seed file is not a room list")
	}
	if len(rooms) == 0 {
		log.Fatal().Msg("seed file holds no rooms")
	}

	store := jsonfile.New(cfg.DataDir)
	if err := store.SaveRooms(context.Background(), rooms); err != nil {
		log.Fatal().Err(err).Msg("seed write failed")
	}
	log.Info().Int("rooms", len(rooms)).Str("dir", cfg.DataDir).Msg("rooms seeded")
}
