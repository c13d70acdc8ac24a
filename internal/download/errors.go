package download

import "errors"

// DownloadError marks a failure to acquire the audio track: network
// failure, invalid URL, or unavailable video.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	if e == nil || e.Err == nil {
		return "download error"
	}
	return "download " + e.URL + ": " + e.Err.Error()
}

func (e *DownloadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsDownloadError(err error) bool {
	var de *DownloadError
	return errors.As(err, &de)
}
