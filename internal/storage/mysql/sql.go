package mysql

const insertHotelSQL = `
INSERT INTO hotels
  (owner_id, title, description, image, country, state, city, location_description,
   gym, spa, bar, laundry, restaurant, shopping, free_parking, bike_rental,
   free_wifi, movie_nights, swimming_pool, coffee_shop)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectHotelSQL = `
SELECT
  id, owner_id, title, description, image, country, state, city, location_description,
  gym, spa, bar, laundry, restaurant, shopping, free_parking, bike_rental,
  free_wifi, movie_nights, swimming_pool, coffee_shop,
  added_at, updated_at
FROM hotels
WHERE id = ?
`

const selectHotelsByOwnerSQL = `
SELECT
  id, owner_id, title, description, image, country, state, city, location_description,
  gym, spa, bar, laundry, restaurant, shopping, free_parking, bike_rental,
  free_wifi, movie_nights, swimming_pool, coffee_shop,
  added_at, updated_at
FROM hotels
WHERE owner_id = ?
ORDER BY id
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

const insertRoomSQL = `
INSERT INTO rooms
  (hotel_id, title, description, image,
   bed_count, guest_count, bathroom_count, king_bed, queen_bed,
   room_price, breakfast_price,
   room_service, tv, balcony, free_wifi, city_view, ocean_view, forest_view,
   mountain_view, air_condition, sound_proofed)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRoomSQL = `
SELECT
  id, hotel_id, title, description, image,
  bed_count, guest_count, bathroom_count, king_bed, queen_bed,
  room_price, breakfast_price,
  room_service, tv, balcony, free_wifi, city_view, ocean_view, forest_view,
  mountain_view, air_condition, sound_proofed,
  added_at, updated_at
FROM rooms
WHERE id = ?
`

const selectRoomsByHotelSQL = `
SELECT
  id, hotel_id, title, description, image,
  bed_count, guest_count, bathroom_count, king_bed, queen_bed,
  room_price, breakfast_price,
  room_service, tv, balcony, free_wifi, city_view, ocean_view, forest_view,
  mountain_view, air_condition, sound_proofed,
  added_at, updated_at
FROM rooms
WHERE hotel_id = ?
ORDER BY id
`

const deleteRoomSQL = `DELETE FROM rooms WHERE id = ?`

// Both reference lists feed the reconciliation pass only.
const selectImageRefsSQL = `
SELECT 'hotel' AS kind, id, image FROM hotels WHERE image <> ''
UNION ALL
SELECT 'room' AS kind, id, image FROM rooms WHERE image <> ''
`
