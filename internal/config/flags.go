package config

import (
	"errors"
	"flag"
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

// ParseFlags parses all configuration flags from os.Args into
// flag.CommandLine. Positional arguments stay available via flag.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d sqlite DSN
//	-c/-config json file path with configs
//	-log-file log file path
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-rotation-batch-size records re-encrypted per progress step
//	-idle-timeout session idle lock timeout (e.g., "5m")
//	-device-key hex encoded 32-byte device key
//	-passcode-verifier device passcode verifier
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var logFile string
	var requestTimeout time.Duration
	var rotationBatchSize int
	var idleTimeout time.Duration
	var deviceKey string
	var passcodeVerifier string

	fs := flag.CommandLine
	fs.Var(&serverAddress, "a", "Server net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Sqlite DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&rotationBatchSize, "rotation-batch-size", 0, "Records re-encrypted per progress step")
	fs.DurationVar(&idleTimeout, "idle-timeout", 0, "Session idle lock timeout (e.g., 5m)")
	fs.StringVar(&deviceKey, "device-key", "", "Hex encoded 32-byte device key")
	fs.StringVar(&passcodeVerifier, "passcode-verifier", "", "Device passcode verifier")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{LogFile: logFile},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Crypto:  Crypto{RotationBatchSize: rotationBatchSize},
		Session: Session{IdleTimeout: idleTimeout},
		Device: Device{
			KeyHex:           deviceKey,
			PasscodeVerifier: passcodeVerifier,
		},
		JSONFilePath: jsonConfigPath,
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
