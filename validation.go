package mlflow

import (
	"regexp"

	"github.com/tarek7669/mlflow/entities"
)

// Length bounds on stored metadata, matching the tracking API contract.
const (
	MaxEntityKeyLength = 250
	MaxParamValLength  = 6000
	MaxTagValLength    = 8000
)

// truncationMarker is appended to oversized tag values after clipping.
const truncationMarker = "..."

var validKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_./ -]+$`)

func validateKey(kind, key string) error {
	if key == "" {
		return invalidArgumentf("Missing value for required parameter '%s.key'.", kind)
	}
	if !validKeyPattern.MatchString(key) {
		return invalidArgumentf(
			"Invalid %s name: '%s'. Names may only contain alphanumerics, "+
				"underscores (_), dashes (-), periods (.), spaces ( ), and slashes (/)",
			kind, key)
	}
	if len(key) > MaxEntityKeyLength {
		return invalidArgumentf("'%s' exceeds the maximum length of %d characters", key, MaxEntityKeyLength)
	}
	return nil
}

func validateTags(tags []entities.LoggedModelTag) error {
	for _, tag := range tags {
		if err := validateKey("tag", tag.Key); err != nil {
			return err
		}
	}
	return nil
}

func validateParams(params []entities.LoggedModelParameter) error {
	for _, param := range params {
		if err := validateKey("param", param.Key); err != nil {
			return err
		}
		if len(param.Value) > MaxParamValLength {
			return invalidArgumentf("'%s' exceeds the maximum length of %d characters", param.Value, MaxParamValLength)
		}
	}
	return nil
}

// clipTagValue enforces the tag value bound by truncating and marking,
// rather than rejecting.
func clipTagValue(value string) string {
	if len(value) <= MaxTagValLength {
		return value
	}
	return value[:MaxTagValLength] + truncationMarker
}
