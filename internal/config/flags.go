package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
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

// ParseFlags parses all configuration flags from os.Args. Positional
// arguments left after the last flag are returned in
// [StructuredConfig.Args].
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (postgres or sqlite)
//	-c/-config json file path with configs
//	-access-token-sign-key access token signing key
//	-refresh-token-sign-key refresh token signing key
//	-access-token-duration access token lifetime (e.g., "15m")
//	-refresh-token-duration refresh token lifetime (e.g., "168h")
//	-token-issuer token issuer name
//	-password-hash-cost bcrypt cost
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-redis-address rate limiter redis address
//	-server server address used by the client in format [host]:[port]
//	-session-file client session file path
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress, adapterAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var accessSignKey, refreshSignKey string
	var accessDuration, refreshDuration time.Duration
	var tokenIssuer string
	var passwordHashCost int
	var requestTimeout time.Duration
	var redisAddress string
	var sessionFile string

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver: postgres or sqlite")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&accessSignKey, "access-token-sign-key", "", "Access token signing key")
	fs.StringVar(&refreshSignKey, "refresh-token-sign-key", "", "Refresh token signing key")
	fs.DurationVar(&accessDuration, "access-token-duration", 0, "Access token duration (e.g., 15m)")
	fs.DurationVar(&refreshDuration, "refresh-token-duration", 0, "Refresh token duration (e.g., 168h)")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.IntVar(&passwordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&redisAddress, "redis-address", "", "Rate limiter Redis address")
	fs.Var(&adapterAddress, "server", "Server address used by the client host:port")
	fs.StringVar(&sessionFile, "session-file", "", "Client session file path")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AccessTokenSignKey:   accessSignKey,
			RefreshTokenSignKey:  refreshSignKey,
			AccessTokenDuration:  accessDuration,
			RefreshTokenDuration: refreshDuration,
			TokenIssuer:          tokenIssuer,
			PasswordHashCost:     passwordHashCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		RateLimit: RateLimit{
			RedisAddress: redisAddress,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress.String(),
			RequestTimeout: requestTimeout,
			SessionFile:    sessionFile,
		},
		JSONFilePath: jsonConfigPath,
		Args:         fs.Args(),
	}, nil
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
