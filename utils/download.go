package utils

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/pkg/errors"
)

// DownloadFile downloads the resource found at uri into a temporary file
// and returns the file name. The caller is responsible for removing it.
func DownloadFile(uri string) (string, error) {
	res, err := http.Get(uri)
	if err != nil {
		return "", errors.Wrapf(err, "unable to download file from URI: %s", uri)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("unable to download file from URI: %s, status %v", uri, res.Status)
	}

	tmpfile, err := os.CreateTemp("", "graymap")
	if err != nil {
		return "", errors.Wrap(err, "unable to create temporary file")
	}
	defer func() {
		if err := tmpfile.Close(); err != nil {
			log.Printf("could not close the temporary file: %v", err)
		}
	}()

	// Copy the response body into the temporary file.
	if _, err := io.Copy(tmpfile, res.Body); err != nil {
		os.Remove(tmpfile.Name())
		return "", errors.Wrap(err, "unable to copy the source URI into the temporary file")
	}
	return tmpfile.Name(), nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}
