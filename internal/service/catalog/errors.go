package catalog

import "errors"

// ErrMovieNotFound indicates the movie is neither in the catalog nor known to the provider.
var ErrMovieNotFound = errors.New("movie not found in external provider")
