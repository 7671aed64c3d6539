// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the resource packages. Validation errors
// are reported as a JSON object mapping each field name to its error
// messages, while other errors are reported as {"detail": "..."}.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/model"
)

// Bind deserializes the c request into req using the b binding and
// validates it. In case of errors, a response is written and false is
// returned, so the caller only needs to return.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends msgs to the name field errors, allocating the errs
// map if it is nil.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

// Assert adds msgs as the name field errors unless ok is true.
// It returns ok, so assertions may be chained with &&.
func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes err as the response. The status code is taken from
// a wrapped *cerr.Error, domain invariant violations are reported as
// 400, and other errors are reported as 500 (and logged).
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	switch {
	case errors.As(err, &ce):
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
	case model.IsInvariantViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	default:
		log.Error(c.Request.Context(), "request failed", log.Err("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	}
}
