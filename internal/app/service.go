package app

import (
	"elliott/internal/adapters"
	"elliott/internal/ports"
)

type Service struct {
	BugTracker ports.BugTrackerPort
	Advisory   ports.AdvisoryPort
}

type Config struct {
	BugzillaBinary    string
	CommandTimeoutSec int
	Errata            adapters.ErrataConfig
	Credentials       adapters.CredentialsConfig
}

func NewService(cfg Config) (Service, error) {
	credentials, err := adapters.NewCredentials(cfg.Credentials)
	if err != nil {
		return Service{}, err
	}
	errata := cfg.Errata
	errata.Credentials = credentials
	return Service{
		BugTracker: adapters.NewBugzillaCLIAdapter(cfg.BugzillaBinary, cfg.CommandTimeoutSec),
		Advisory:   adapters.NewErrataClient(errata),
	}, nil
}
