package echoapi

type DestroyMultipleRequest struct {
	IDs []string `query:"id"`
}
