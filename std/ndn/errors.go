package ndn

import (
	"errors"
)

// ErrWrongType is returned when the type of the packet to parse is not expected.
var ErrWrongType = errors.New("packet to parse is not of desired type")

// ErrKeyUninitialized is returned when signing with a key that has no key material.
var ErrKeyUninitialized = errors.New("key is not initialized")

// ErrInvalidKey is returned when imported key material is malformed.
var ErrInvalidKey = errors.New("invalid key material")

// ErrCertAlgorithm is returned when a certificate carries an unsupported public key algorithm.
var ErrCertAlgorithm = errors.New("certificate public key algorithm is not supported")

// ErrNoSigningKey is returned when sending Data without a signing key.
var ErrNoSigningKey = errors.New("no signing key")

// ErrFragmented is returned for NDNLPv2 packets split over several fragments.
var ErrFragmented = errors.New("fragmented LpPacket is not supported")
