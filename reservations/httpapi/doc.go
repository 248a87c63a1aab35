// Package httpapi exposes the reservation lifecycle as a JSON REST API on a gorilla/mux router.
//
//	GET    /reservation/{id}
//	GET    /reservation?roomId=&userId=&pageSize=&pageNumber=
//	POST   /reservation
//	PUT    /reservation/{id}
//	DELETE /reservation/{id}/cancel
//	POST   /reservation/{id}/approve
//
// Failures are answered with an ErrorResponseDto.
package httpapi
