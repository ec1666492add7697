// Package schemeerr wraps Go errors at OS-call boundaries into the
// value package's Error categories, prefixing the message with context
// via github.com/pkg/errors. Only the resulting message text is kept; the
// wrapped Go error and its stack trace are not retained.
package schemeerr

import (
	"os"

	"github.com/pkg/errors"

	"cozenage/internal/value"
)

// WrapOS classifies err as FILE_ERR (missing/permission/exists failures)
// or OS_ERR (anything else), tagging the message with op and path.
func WrapOS(op, path string, err error) *value.ErrorV {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrapf(err, "%s %s", op, path)
	if os.IsNotExist(err) || os.IsPermission(err) || os.IsExist(err) {
		return value.NewError(value.FileErr, wrapped.Error())
	}
	return value.NewError(value.OSErr, wrapped.Error())
}

// WrapRead tags a parse/decode failure as READ_ERR.
func WrapRead(context string, err error) *value.ErrorV {
	if err == nil {
		return nil
	}
	return value.NewError(value.ReadErr, errors.Wrap(err, context).Error())
}
