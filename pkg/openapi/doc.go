// Package openapi exposes the public contracts for the loader and decoder
// stages. Implementations live under internal/openapi so the YAML node walker
// and the kin-openapi validator stay hidden from consumers.
package openapi
