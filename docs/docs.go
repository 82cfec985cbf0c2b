// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/compress_pdf": {
            "post": {
                "security": [{"FunctionKey": []}],
                "description": "Strips document metadata and re-serializes the PDF with unused objects removed and streams deflated.\nThe result is returned inline unless the server is configured for link delivery.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/pdf"],
                "tags": ["compress"],
                "summary": "Compress a PDF",
                "parameters": [
                    {"type": "file", "description": "PDF to compress (max 100 MiB)", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "default": true, "description": "Leave the first page untouched", "name": "skip_first", "in": "query"},
                    {"type": "boolean", "default": true, "description": "Leave the last page untouched", "name": "skip_last", "in": "query"},
                    {"type": "string", "description": "Additional pages to leave untouched, e.g. 2,4-6 (pages 1-100000)", "name": "ignore_pages", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Compressed PDF", "schema": {"type": "file"}},
                    "400": {"description": "Missing file, file too large or invalid page selector", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "401": {"description": "Missing or invalid function key", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Processing failure", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/compress_pdf_blob": {
            "post": {
                "security": [{"FunctionKey": []}],
                "description": "Same processing as compress_pdf; the result is uploaded to blob storage and a presigned URL valid for one hour is returned.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["compress"],
                "summary": "Compress a PDF and return a download link",
                "parameters": [
                    {"type": "file", "description": "PDF to compress (max 100 MiB)", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "default": true, "description": "Leave the first page untouched", "name": "skip_first", "in": "query"},
                    {"type": "boolean", "default": true, "description": "Leave the last page untouched", "name": "skip_last", "in": "query"},
                    {"type": "string", "description": "Additional pages to leave untouched, e.g. 2,4-6 (pages 1-100000)", "name": "ignore_pages", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Download link", "schema": {"$ref": "#/definitions/handler.LinkResponse"}},
                    "400": {"description": "Missing file, file too large or invalid page selector", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "401": {"description": "Missing or invalid function key", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Processing, upload or storage configuration failure", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Checks that the storage bucket is reachable when link delivery is configured.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string", "example": "ok"},
                "storage": {"type": "string", "example": "ok"}
            }
        },
        "handler.LinkResponse": {
            "type": "object",
            "properties": {
                "blob_name": {"type": "string", "example": "3f2c9a0e-8c1b-4d6e-9f3a-1b2c3d4e5f60_compressed_report.pdf"},
                "compressed_size_bytes": {"type": "integer", "example": 482133},
                "download_url": {"type": "string"},
                "expires_at": {"type": "string"},
                "expires_in": {"type": "string", "example": "1 hour"},
                "filename": {"type": "string", "example": "compressed_report.pdf"},
                "original_size_bytes": {"type": "integer", "example": 1048576},
                "reduction_percent": {"type": "number", "example": 54.02},
                "size": {"type": "integer", "example": 482133}
            }
        }
    },
    "securityDefinitions": {
        "FunctionKey": {
            "type": "apiKey",
            "name": "x-functions-key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PDF Compress API",
	Description:      "Strips metadata from uploaded PDFs and re-serializes them with unused objects removed and streams deflated.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
