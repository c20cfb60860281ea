package config

import (
	"flag"
	"os"
	"time"

	"github.com/autotransformers/site/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-e string   environment name ("development" or "production")
//	-s string   session cookie HMAC secret
//	-f string   path of the users JSON file
//	-d string   static assets directory
//	-t int      session TTL, minutes
//	-w int      rate-limit window, minutes
//	-m int      max auth attempts per window
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-s", "-f", "-d", "-t", "-w", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.Env, "e", config.Env, "environment (development|production)")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session cookie secret")
	fs.StringVar(&config.UsersFile, "f", config.UsersFile, "users JSON file")
	fs.StringVar(&config.StaticDir, "d", config.StaticDir, "static assets directory")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session ttl (in minutes)")
	rateWindow := fs.Int("w", int(config.RateLimitWindow.Minutes()), "rate limit window (in minutes)")
	fs.IntVar(&config.RateLimitMax, "m", config.RateLimitMax, "max auth attempts per window")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
	config.RateLimitWindow = time.Duration(*rateWindow) * time.Minute
}
