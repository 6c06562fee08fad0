// Package kvrepo groups the repositories that map domain entities onto
// kv collections. Every repository resolves its transaction from the
// context and fails with kv.ErrNoTx outside kv.TxManager.RunInTx.
package kvrepo

import (
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/request"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
)

// Schema lists the secondary indexes the repositories rely on.
// Stores must be opened with it.
var Schema = kv.Schema{
	request.Collection: {request.AttrRequesteeID},
}
