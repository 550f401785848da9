package usecasecontract

// IAppLogger is the logging surface used across the application.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	// WithField returns a logger that adds key=value to every entry.
	WithField(key string, value interface{}) IAppLogger
}
