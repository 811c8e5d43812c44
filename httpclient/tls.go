package httpclient

import (
	"crypto/tls"
	"crypto/x509"
)

func newTLSConfig(opts Options, roots *x509.CertPool) *tls.Config {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    roots,
	}

	switch {
	case opts.AcceptInvalidCerts:
		cfg.InsecureSkipVerify = true // #nosec G402 -- explicit danger_accept_invalid_certs switch
	case opts.AcceptInvalidHostnames:
		// The standard verifier cannot skip only the host name check, so it is
		// disabled and the chain is verified again without a DNS name.
		cfg.InsecureSkipVerify = true // #nosec G402 -- chain still verified in VerifyConnection
		cfg.VerifyConnection = func(cs tls.ConnectionState) error {
			return verifyChain(cs, roots)
		}
	}
	return cfg
}

// verifyChain checks the peer chain against roots (system roots when nil)
// without matching the server name.
func verifyChain(cs tls.ConnectionState, roots *x509.CertPool) error {
	if len(cs.PeerCertificates) == 0 {
		return ErrNoPeerCertificates
	}

	intermediates := x509.NewCertPool()
	for _, cert := range cs.PeerCertificates[1:] {
		intermediates.AddCert(cert)
	}

	_, err := cs.PeerCertificates[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
	})
	return err
}
