package server

import (
	"seriestracker/internal/client"
	"seriestracker/internal/tracker"
)

type Server struct {
	Tracker *tracker.Tracker
	Client  client.Client
	Logger  logger
}

type logger interface {
	Debug(v ...any)
	Info(v ...any)
	Error(v ...any)
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	Tracef(format string, v ...any)
}

// omdbClient resolves the provider credential: the server-configured key
// wins, otherwise the user-supplied key stored in the tracker document.
func (s Server) omdbClient() client.Client {
	c := s.Client
	if c.OMDBAPIKey == "" {
		c.OMDBAPIKey = s.Tracker.State().OMDBAPIKey
	}
	return c
}
