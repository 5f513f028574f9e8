// Package docs registra el documento OpenAPI que sirve /swagger/*.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "/genres": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Listar categorías",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            }
        },
        "/medications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Listar medicamentos",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/medications.MedicationResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Crear medicamento",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/medications.medicationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/medications.MedicationResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}}
                }
            }
        },
        "/medications/by-genre": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Listar medicamentos por categoría",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/medications.genreGroupResponse"}}}}
            }
        },
        "/medications/{medicationID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Obtener medicamento",
                "parameters": [{"type": "string", "description": "ID del medicamento", "name": "medicationID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medications.MedicationResponse"}},
                    "404": {"description": "medication not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Reemplazar medicamento",
                "parameters": [
                    {"type": "string", "name": "medicationID", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/medications.medicationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medications.MedicationResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "404": {"description": "medication not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Actualizar medicamento parcialmente",
                "parameters": [
                    {"type": "string", "name": "medicationID", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/medications.medicationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medications.MedicationResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "404": {"description": "medication not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["medications"],
                "summary": "Eliminar medicamento",
                "parameters": [{"type": "string", "name": "medicationID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "medication not found", "schema": {"type": "string"}}}
            }
        },
        "/sets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sets"],
                "summary": "Listar sets",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/sets.setResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sets"],
                "summary": "Crear set",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/sets.createSetRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/sets.setResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "409": {"description": "set already exists", "schema": {"type": "string"}}
                }
            }
        },
        "/sets/{setName}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sets"],
                "summary": "Obtener set con sus medicamentos",
                "parameters": [{"type": "string", "name": "setName", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sets.setDetailResponse"}},
                    "404": {"description": "set not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["sets"],
                "summary": "Eliminar set",
                "parameters": [{"type": "string", "name": "setName", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "set not found", "schema": {"type": "string"}}}
            }
        },
        "/sets/{setName}/medications": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sets"],
                "summary": "Agregar medicamentos al set",
                "parameters": [
                    {"type": "string", "name": "setName", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/sets.membersRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sets.setResponse"}},
                    "400": {"description": "invalid json / unknown medication", "schema": {"type": "string"}},
                    "404": {"description": "set not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sets"],
                "summary": "Quitar medicamentos del set",
                "parameters": [
                    {"type": "string", "name": "setName", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/sets.membersRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sets.setResponse"}},
                    "404": {"description": "set not found", "schema": {"type": "string"}}
                }
            }
        },
        "/prescriptions/preview": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prescriptions"],
                "summary": "Vista previa de la hoja de receta",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/prescriptions.sheetRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/prescriptions.sheetResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/prescriptions.missingResponse"}}
                }
            }
        },
        "/prescriptions/export": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["prescriptions"],
                "summary": "Exportar la hoja de receta a xlsx",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/prescriptions.sheetRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/prescriptions.missingResponse"}}
                }
            }
        }
    },
    "definitions": {
        "medications.medicationRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "effects": {"type": "string"},
                "precautions": {"type": "string"},
                "dosageAmount": {"type": "string"},
                "dosageTiming": {"type": "array", "items": {"type": "string"}},
                "genre": {"type": "string", "enum": ["解熱鎮痛", "ピル", "ビタミン", "対症療法", "頭痛", "抗生物質", "漢方薬", "外用薬", "その他"]}
            }
        },
        "medications.MedicationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "effects": {"type": "string"},
                "precautions": {"type": "string"},
                "dosageAmount": {"type": "string"},
                "dosageTiming": {"type": "array", "items": {"type": "string"}},
                "genre": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "medications.genreGroupResponse": {
            "type": "object",
            "properties": {
                "genre": {"type": "string"},
                "medications": {"type": "array", "items": {"$ref": "#/definitions/medications.MedicationResponse"}}
            }
        },
        "sets.createSetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "medicationIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "sets.membersRequest": {
            "type": "object",
            "properties": {"medicationIds": {"type": "array", "items": {"type": "string"}}}
        },
        "sets.setResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "medicationIds": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "sets.setDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "medications": {"type": "array", "items": {"$ref": "#/definitions/medications.MedicationResponse"}}
            }
        },
        "prescriptions.selectionRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "days": {"type": "integer"},
                "unit": {"type": "string"}
            }
        },
        "prescriptions.sheetRequest": {
            "type": "object",
            "properties": {
                "patientName": {"type": "string"},
                "prescribedAt": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/prescriptions.selectionRequest"}}
            }
        },
        "prescriptions.sheetResponse": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "patientName": {"type": "string"},
                "prescribedAt": {"type": "string"},
                "prescribedDate": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"type": "object"}},
                "notice": {"type": "string"},
                "clinic": {"type": "object"}
            }
        },
        "prescriptions.missingResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "missing": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "clinic-medications API",
	Description:      "Catálogo de medicamentos, sets y hojas de receta con la tabla de administración.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
