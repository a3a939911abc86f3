// Package docs registra la definición Swagger de la API de fichas.
// Se mantiene a mano a partir de las anotaciones godoc de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/session": {
            "get": {
                "tags": ["session"],
                "summary": "Sesión activa",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "401": {"description": "unauthorized"}
                }
            },
            "post": {
                "tags": ["session"],
                "summary": "Iniciar sesión",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session"}},
                    "400": {"description": "invalid json"},
                    "401": {"description": "invalid credentials"}
                }
            },
            "delete": {
                "tags": ["session"],
                "summary": "Cerrar sesión",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/patients": {
            "get": {
                "tags": ["patients"],
                "summary": "Listar fichas",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Texto a buscar en nombre, especie, raza o responsable"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/patient"}}},
                    "401": {"description": "unauthorized"}
                }
            },
            "post": {
                "tags": ["patients"],
                "summary": "Crear ficha",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patientRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/patient"}},
                    "400": {"description": "invalid json"},
                    "401": {"description": "unauthorized"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/validationResponse"}}
                }
            }
        },
        "/patients/options": {
            "get": {
                "tags": ["patients"],
                "summary": "Opciones de operaciones y estudios",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/optionsResponse"}}
                }
            }
        },
        "/patients/export": {
            "get": {
                "tags": ["patients"],
                "summary": "Exportar fichas",
                "produces": ["application/json", "application/yaml"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["json", "yaml"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/patient"}}},
                    "400": {"description": "unknown export format"},
                    "401": {"description": "unauthorized"}
                }
            }
        },
        "/patients/{patientID}": {
            "get": {
                "tags": ["patients"],
                "summary": "Ver ficha",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "patientID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/patient"}},
                    "401": {"description": "unauthorized"},
                    "404": {"description": "patient not found"}
                }
            },
            "patch": {
                "tags": ["patients"],
                "summary": "Editar ficha",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "patientID", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patientRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/patient"}},
                    "400": {"description": "invalid json"},
                    "401": {"description": "unauthorized"},
                    "404": {"description": "patient not found"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/validationResponse"}}
                }
            },
            "delete": {
                "tags": ["patients"],
                "summary": "Borrar ficha",
                "parameters": [
                    {"name": "patientID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "unauthorized"},
                    "404": {"description": "patient not found"}
                }
            }
        }
    },
    "definitions": {
        "loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "session": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "patientRequest": {
            "type": "object",
            "properties": {
                "patientName": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "string"},
                "vaccinesUpToDate": {"type": "string", "enum": ["Si", "No", ""]},
                "operations": {"type": "array", "items": {"type": "string"}},
                "recentStudies": {"type": "array", "items": {"type": "string"}},
                "ownerName": {"type": "string"},
                "ownerPhone": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "patient": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "patientName": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "string"},
                "vaccinesUpToDate": {"type": "string", "enum": ["Si", "No", ""]},
                "operations": {"type": "array", "items": {"type": "string"}},
                "recentStudies": {"type": "array", "items": {"type": "string"}},
                "ownerName": {"type": "string"},
                "ownerPhone": {"type": "string"},
                "notes": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "optionsResponse": {
            "type": "object",
            "properties": {
                "operations": {"type": "array", "items": {"type": "string"}},
                "studies": {"type": "array", "items": {"type": "string"}}
            }
        },
        "validationResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo contiene los datos exportados de la definición.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vet Patient Records API",
	Description:      "Fichas de pacientes de una clínica veterinaria.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
