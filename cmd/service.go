package cmd

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"picam.api/v0/database"
	"picam.api/v0/internal/config"
	"picam.api/v0/pkg/command"
	"picam.api/v0/pkg/picture"
)

// newPictureService wires the picture service from cfg: the exec runner, the
// optional operation journal and, when reg is set, operation metrics.
// The journal is nil when disabled. The returned cleanup closes whatever was
// opened.
func newPictureService(cfg *config.Config, reg prometheus.Registerer) (*picture.Service, *database.Journal, func(), error) {
	cleanup := func() {}
	var journal *database.Journal
	opts := []picture.ServiceOption{}

	if reg != nil {
		opts = append(opts, picture.WithMetrics(picture.NewMetrics(reg)))
	}

	if cfg.DatabaseURL != "" {
		db, err := database.NewConnectionFromURL(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("failed to open operation journal: %v", err)
		}
		log.Println("Recording operations to the journal")
		journal = database.NewJournal(db)
		opts = append(opts, picture.WithRecorder(journal))
		cleanup = func() {
			if err := database.Close(); err != nil {
				log.Printf("Failed to close database: %v\n", err)
			}
		}
	}

	runner := command.NewExecRunner(cfg.CommandTimeout)
	svc, err := picture.NewService(cfg.PictureSettings(), runner, opts...)
	if err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}

	return svc, journal, cleanup, nil
}
