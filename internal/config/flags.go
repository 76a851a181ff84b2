package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all server configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-metrics-address metrics server address in format [host]:[port]
//	-d database DSN
//	-driver storage driver (postgres, sqlite, memory)
//	-c/-config json file path with configs
//	-session-secret session token signing secret
//	-session-issuer session token issuer name
//	-session-update-age age after which a session is re-issued (e.g., "24h")
//	-hash-cost bcrypt work factor
//	-hash-workers concurrent password hash operations
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-static-dir directory served under /static/
//	-log-level log level
func ParseFlags() *StructuredConfig {
	var serverAddress, metricsAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var sessionSecret string
	var sessionIssuer string
	var sessionUpdateAge time.Duration
	var hashCost int
	var hashWorkers int
	var requestTimeout time.Duration
	var staticDir string
	var logLevel string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&metricsAddress, "metrics-address", "Metrics server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Storage driver: postgres, sqlite or memory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&sessionSecret, "session-secret", "", "Session token signing secret")
	flag.StringVar(&sessionIssuer, "session-issuer", "", "Session token issuer")
	flag.DurationVar(&sessionUpdateAge, "session-update-age", 0, "Session re-issue age (e.g., 24h)")
	flag.IntVar(&hashCost, "hash-cost", 0, "Password hash work factor")
	flag.IntVar(&hashWorkers, "hash-workers", 0, "Concurrent password hash operations")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&staticDir, "static-dir", "", "Directory served under /static/")
	flag.StringVar(&logLevel, "log-level", "", "Log level")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Session: Session{
			Secret:    sessionSecret,
			Issuer:    sessionIssuer,
			UpdateAge: sessionUpdateAge,
		},
		Hasher: Hasher{
			Cost:    hashCost,
			Workers: hashWorkers,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			MetricsAddress: metricsAddress.String(),
			RequestTimeout: requestTimeout,
			StaticDir:      staticDir,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty (all interfaces).
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
