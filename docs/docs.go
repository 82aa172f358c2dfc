// Package docs holds the OpenAPI description served at /swagger/doc.json.
// Regenerate with: swag init -g main.go
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
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Username and password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.loginReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.loginResp"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/vendors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vendors"],
                "summary": "List vendors",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Vendor"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["vendors"],
                "summary": "Create a vendor",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Vendor", "name": "vendor", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.VendorInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Vendor"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["employees"],
                "summary": "List employees",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Employee"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["employees"],
                "summary": "Create an employee, optionally with a login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Employee", "name": "employee", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.EmployeeInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Employee"}},
                    "409": {"description": "username taken", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "List projects",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "preparation or completed", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Project"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Accepts JSON, or multipart/form-data with the same fields and an optional \"drawing\" file. Without enquiry_id one is allocated.",
                "tags": ["projects"],
                "summary": "Create a project",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Project", "name": "project", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.ProjectInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Project"}},
                    "409": {"description": "enquiry id taken", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/projects/{id}/finalize": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Finalize a project's design",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Project"}},
                    "409": {"description": "already finalized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/projects/{id}/measurements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["measurements"],
                "summary": "List a project's measurement sheet",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MeasurementSheetEntry"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Area is computed as length × width × quantity / 1,000,000 (mm to m²).",
                "tags": ["measurements"],
                "summary": "Add a duct to a project's measurement sheet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Entry", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.EntryInput"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.MeasurementSheetEntry"}}}
            }
        },
        "/api/v1/projects/{id}/area-by-gauge": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["measurements"],
                "summary": "Sheet area per gauge",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "number"}}}}
            }
        },
        "/api/v1/projects/{id}/production": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["production"],
                "summary": "Production stages of a project",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.stagesResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Partial update: stages missing from the body keep their value. Each stage is 0 to 100.",
                "tags": ["production"],
                "summary": "Update production stages",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Stages", "name": "stages", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.StageUpdate"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.stagesResponse"}}}
            }
        },
        "/api/v1/production": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["production"],
                "summary": "Finalized projects with their production progress",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.ProductionRow"}}}}
            }
        },
        "/api/v1/projects/{id}/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["summary"],
                "summary": "Project summary",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/records.ProjectSummary"}}}
            }
        },
        "/api/v1/projects/{id}/summary/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["summary"],
                "summary": "Download the project summary as xlsx",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/api/v1/projects/{id}/measurements/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["measurements"],
                "summary": "Download the measurement sheet as xlsx",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["summary"],
                "summary": "Headline counts",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/records.DashboardStats"}}}
            }
        },
        "/api/v1/change-password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Change the caller's password",
                "consumes": ["application/json"],
                "parameters": [
                    {"description": "Current and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.changePasswordReq"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.loginReq": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.loginResp": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "role": {"type": "string"}}}
            }
        },
        "handlers.changePasswordReq": {
            "type": "object",
            "properties": {"current_password": {"type": "string"}, "new_password": {"type": "string"}}
        },
        "handlers.stagesResponse": {
            "type": "object",
            "properties": {
                "project_id": {"type": "integer"},
                "stages": {"$ref": "#/definitions/records.Stages"},
                "overall_progress": {"type": "number"}
            }
        },
        "models.Vendor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"}, "gst_number": {"type": "string"},
                "address": {"type": "string"}, "contact_person": {"type": "string"}, "phone": {"type": "string"},
                "email": {"type": "string"}, "bank_name": {"type": "string"}, "bank_account": {"type": "string"},
                "ifsc_code": {"type": "string"}
            }
        },
        "models.Employee": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"}, "designation": {"type": "string"},
                "email": {"type": "string"}, "phone": {"type": "string"}, "username": {"type": "string"}
            }
        },
        "models.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "enquiry_id": {"type": "string", "example": "VE/TN/2024/E001"},
                "client": {"type": "string"}, "quotation_ref": {"type": "string"},
                "start_date": {"type": "string", "example": "2024-05-16"}, "end_date": {"type": "string", "example": "2024-06-30"},
                "location": {"type": "string"}, "source_drawing": {"type": "string"}, "gst_number": {"type": "string"},
                "address": {"type": "string"}, "incharge": {"type": "string"}, "notes": {"type": "string"},
                "design_status": {"type": "string", "enum": ["preparation", "completed"]}
            }
        },
        "models.MeasurementSheetEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "project_id": {"type": "integer"}, "duct_no": {"type": "string"},
                "duct_type": {"type": "string"}, "length": {"type": "number"}, "width": {"type": "number"},
                "height": {"type": "number"}, "quantity": {"type": "integer"}, "gauge": {"type": "string"},
                "area": {"type": "number"}
            }
        },
        "records.VendorInput": {"$ref": "#/definitions/models.Vendor"},
        "records.EmployeeInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}, "designation": {"type": "string"}, "email": {"type": "string"},
                "phone": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "staff"]}
            }
        },
        "records.ProjectInput": {"$ref": "#/definitions/models.Project"},
        "records.EntryInput": {
            "type": "object",
            "properties": {
                "duct_no": {"type": "string"}, "duct_type": {"type": "string"}, "length": {"type": "number"},
                "width": {"type": "number"}, "height": {"type": "number"}, "quantity": {"type": "integer"},
                "gauge": {"type": "string", "example": "22G"}
            }
        },
        "records.Stages": {
            "type": "object",
            "properties": {
                "sheet_cutting": {"type": "number"}, "plasma_fabrication": {"type": "number"},
                "boxing_assembly": {"type": "number"}, "quality_checking": {"type": "number"},
                "dispatch": {"type": "number"}
            }
        },
        "records.StageUpdate": {"$ref": "#/definitions/records.Stages"},
        "records.ProductionRow": {
            "type": "object",
            "properties": {
                "project": {"$ref": "#/definitions/models.Project"},
                "stages": {"$ref": "#/definitions/records.Stages"},
                "overall_progress": {"type": "number"}
            }
        },
        "records.ProjectSummary": {
            "type": "object",
            "properties": {
                "project": {"$ref": "#/definitions/models.Project"},
                "area_by_gauge": {"type": "object", "additionalProperties": {"type": "number"}},
                "total_area": {"type": "number"},
                "entry_count": {"type": "integer"},
                "stages": {"$ref": "#/definitions/records.Stages"},
                "overall_progress": {"type": "number"}
            }
        },
        "records.DashboardStats": {
            "type": "object",
            "properties": {
                "vendors": {"type": "integer"}, "employees": {"type": "integer"},
                "projects_preparation": {"type": "integer"}, "projects_completed": {"type": "integer"},
                "average_progress": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fabtrack API",
	Description:      "Duct fabrication projects: enquiries, measurement sheets, production tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
