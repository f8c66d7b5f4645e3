package handler

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

func withParam(ctx context.Context, key, value string) context.Context {
	return context.WithValue(ctx, httprouter.ParamsKey, httprouter.Params{{Key: key, Value: value}})
}
