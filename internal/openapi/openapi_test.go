// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/api2spec/schemareport/pkg/jsonv"
)

const petstoreSwagger = `
swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
paths:
  /store/order:
    post:
      responses:
        "200":
          description: successful operation
          schema:
            $ref: "#/definitions/Order"
        "400":
          description: Invalid Order
  /pet/{petId}:
    get:
      responses:
        default:
          description: any pet
          schema:
            type: object
definitions:
  Order:
    type: object
    required: [status, shipDate]
    properties:
      id:
        type: integer
      shipDate:
        type: string
      status:
        type: string
        enum: [placed, approved]
`

const petstoreOpenAPI = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        "2XX":
          description: ok
          content:
            text/plain:
              schema:
                type: string
            application/problem+json:
              schema:
                type: object
        "404":
          $ref: "#/components/responses/NotFound"
        "204":
          description: no content
components:
  responses:
    NotFound:
      description: missing
      content:
        application/json:
          schema:
            type: object
            required: [message]
`

func mustYAML(t *testing.T, s string) jsonv.Value {
	t.Helper()
	v, err := jsonv.ParseYAML([]byte(s))
	require.NoError(t, err)
	return v
}
