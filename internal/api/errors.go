package api

import "errors"

var (
	// ErrInvalidInput marks malformed request bodies or identifiers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream marks a failed media-search call.
	ErrUpstream = errors.New("media search failed")
	// ErrMediaUnavailable means no TMDB key is configured.
	ErrMediaUnavailable = errors.New("media search not configured")
)

// Response messages returned to clients.
const (
	MessageNotFound          = "Produção não encontrada."
	MessageDeleted           = "Produção removida com sucesso."
	MessageMediaSearchFailed = "Erro ao buscar informações"
	MessageHello             = "Servidor funcionando!"
	MessageInvalidBody       = "Corpo da requisição inválido."
	MessageInvalidID         = "Identificador inválido."
	MessageInternal          = "Erro interno do servidor."
)
