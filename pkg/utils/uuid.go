package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateRunID gera o identificador de um ciclo de consulta, gravado junto ao snapshot
func GenerateRunID() (string, error) {
	return gonanoid.Generate(characters, 12)
}
