// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags from args (without the program
// name). Unset flags leave the corresponding fields zero so lower-precedence
// sources can fill them.
//
// Flags:
//
//	-a, --address            status server address in format [host]:[port]
//	-c, --config             JSON config file path
//	    --session-driver     registered session driver name
//	    --log-format         json or console
//	    --storage-driver     file or sqlite
//	-d, --data-dir           directory of per-account documents
//	    --dsn                SQLite DSN
//	    --repo-owner         shared document repository owner
//	    --repo-name          shared document repository name
//	    --repo-branch        shared document branch
//	    --repo-path          shared document path
//	    --request-timeout    outbound request timeout (e.g. "30s")
//	    --retry-delay        fixed retry backoff (e.g. "10s")
//	    --claim-interval     claim loop cadence (e.g. "1m")
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress  NetAddress
		jsonConfigPath string
		sessionDriver  string
		logFormat      string
		storageDriver  string
		dataDir        string
		dsn            string
		owner          string
		repo           string
		branch         string
		path           string
		requestTimeout time.Duration
		retryDelay     time.Duration
		claimInterval  time.Duration
	)

	fs := pflag.NewFlagSet("fleet", pflag.ContinueOnError)
	fs.VarP(&serverAddress, "address", "a", "Status server address host:port")
	fs.StringVarP(&jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&sessionDriver, "session-driver", "", "Registered session driver name")
	fs.StringVar(&logFormat, "log-format", "", "Log format: json or console")
	fs.StringVar(&storageDriver, "storage-driver", "", "Session document storage: file or sqlite")
	fs.StringVarP(&dataDir, "data-dir", "d", "", "Directory of per-account documents")
	fs.StringVar(&dsn, "dsn", "", "SQLite DSN")
	fs.StringVar(&owner, "repo-owner", "", "Shared document repository owner")
	fs.StringVar(&repo, "repo-name", "", "Shared document repository name")
	fs.StringVar(&branch, "repo-branch", "", "Shared document branch")
	fs.StringVar(&path, "repo-path", "", "Shared document path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s)")
	fs.DurationVar(&retryDelay, "retry-delay", 0, "Fixed retry backoff (e.g., 10s)")
	fs.DurationVar(&claimInterval, "claim-interval", 0, "Claim loop cadence (e.g., 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogFormat:     logFormat,
			SessionDriver: sessionDriver,
		},
		Remote: Remote{
			Owner:  owner,
			Repo:   repo,
			Branch: branch,
			Path:   path,
		},
		Storage: Storage{
			Driver: storageDriver,
			Dir:    dataDir,
			DSN:    dsn,
		},
		Adapter: Adapter{
			RequestTimeout: requestTimeout,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers: Workers{
			RetryDelay:    retryDelay,
			ClaimInterval: claimInterval,
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

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host binds all interfaces. It validates the port range, checks IP
// correctness unless host is "localhost" or empty, and returns an error if
// the format or values are invalid.
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
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
