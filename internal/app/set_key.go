package app

import (
	"context"
	"fmt"
	"strings"

	"gengo-go/internal/config"
)

func RunSetKey(_ context.Context, publicKey, privateKey string) error {
	publicKey = strings.TrimSpace(publicKey)
	privateKey = strings.TrimSpace(privateKey)
	if publicKey == "" || privateKey == "" {
		return fmt.Errorf("both the public and the private key are required")
	}
	return config.SaveKeys(config.Keys{PublicKey: publicKey, PrivateKey: privateKey})
}
