package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/whatis/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	WhatisSvc       WhatisService
}
