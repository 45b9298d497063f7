// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Components receive a named *zap.Logger from Component and never build
// their own. A nil logger handed to a component means zap.NewNop.
//
//	logger := logging.NewDefault()
//	log := logger.Component("hub")
//	log.Info("desktop started", zap.String("desktop_id", id))
package logging
