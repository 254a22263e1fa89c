package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"os"
	"path/filepath"
)

// Generates the RS256 keypair the server signs and verifies tokens with.
func main() {
	dir := flag.String("out", ".", "directory to write private.pem / public.pem into")
	flag.Parse()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	privFile, err := os.Create(filepath.Join(*dir, "private.pem"))
	if err != nil {
		panic(err)
	}
	defer privFile.Close()
	privBytes := x509.MarshalPKCS1PrivateKey(priv)
	pem.Encode(privFile, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: privBytes})

	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		panic(err)
	}
	pubFile, err := os.Create(filepath.Join(*dir, "public.pem"))
	if err != nil {
		panic(err)
	}
	defer pubFile.Close()
	pem.Encode(pubFile, &pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})
}
