package network

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	validForMonth = time.Hour * 24 * 30
	rsaBits       = 2048
)

// KeyGenerator writes a self-signed certificate for "localhost" under dirPath.
type KeyGenerator struct {
	dirPath,
	certPath,
	keyPath string
}

func NewKeyGenerator(dirPath, certFile, keyFile string) (*KeyGenerator, error) {
	p := &KeyGenerator{
		dirPath:  dirPath,
		certPath: filepath.Join(dirPath, certFile),
		keyPath:  filepath.Join(dirPath, keyFile),
	}

	if err := GenerateKey(p.dirPath, p.certPath, p.keyPath); err != nil {
		return nil, err
	}

	return p, nil
}

func (g *KeyGenerator) GetCertPath() string {
	return g.certPath
}

func (g *KeyGenerator) GetKeyPath() string {
	return g.keyPath
}

func (g *KeyGenerator) Close() {
	for _, p := range []string{g.keyPath, g.certPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Error("failed to remove a file", "path", p, "error", err)
		}
	}
}

func GenerateKey(dirPath, certPath, keyPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return errors.Wrap(err, "failed to make directory")
	}

	priv, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return errors.Wrap(err, "failed to generate private key")
	}

	notBefore := time.Now()
	notAfter := notBefore.Add(validForMonth)

	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return errors.Wrap(err, "failed to generate serial number")
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Self-Signed Pollchain Certificate"},
		},
		NotBefore: notBefore,
		NotAfter:  notAfter,

		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{"localhost"},
	}

	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return errors.Wrap(err, "failed to create certificate")
	}

	certOut, err := os.Create(certPath)
	if err != nil {
		return errors.Wrap(err, "failed to open certificate file")
	}
	defer certOut.Close()
	if err := pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: derBytes}); err != nil {
		return err
	}

	keyOut, err := os.OpenFile(keyPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "failed to open key file")
	}
	defer keyOut.Close()

	return pem.Encode(keyOut, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
}
