// Command jwks-to-pem prints the auth provider's signing key as PEM, ready to
// be used as SUPABASE_JWT_SECRET for asymmetric tokens.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"posgrad/internal/auth"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("SUPABASE_URL")
	if defaultURL == "" {
		defaultURL = "http://127.0.0.1:54321"
	}
	supabaseURL := flag.String("url", defaultURL, "Supabase project URL")
	kid := flag.String("kid", "", "key id to export (defaults to the first key)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := auth.FetchJWKS(ctx, *supabaseURL, &http.Client{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	key := jwks.Keys[0]
	if *kid != "" {
		found := false
		for _, k := range jwks.Keys {
			if k.Kid == *kid {
				key, found = k, true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "No key with kid %q\n", *kid)
			os.Exit(1)
		}
	}

	pemKey, err := key.PEM()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s/%s key: %v\n", key.Kty, key.Alg, err)
		os.Exit(1)
	}
	fmt.Print(pemKey)
}
