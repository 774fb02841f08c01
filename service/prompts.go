package service

// documentPrompt asks the model to classify one uploaded document and return its fields as JSON.
const documentPrompt = `Analyze this document. Identify if it is a 'Tour Approval', 'Salary Slip', 'Map Screenshot' or 'Ticket'.

1. If **Tour Approval** (looks like "Online Tour Management System"):
   - Extract 'type': 'tour_approval'.
   - Extract 'system_no': The long number usually below a barcode or labeled "Tour ID/System No" (e.g., 21781756377236).
   - Extract 'user_details': { 'name', 'designation', 'budget_head' (B.H.) } if visible.
   - Extract 'trips': A list of journeys. For each:
     - departure_date (DD/MM/YYYY)
     - departure_time (HH:MM)
     - departure_place (City/Campus)
     - arrival_date (DD/MM/YYYY)
     - arrival_time (HH:MM)
     - arrival_place
     - mode_of_journey
     - distance_km (only if printed on the order)
     - purpose (Extract the specific reason/course name).

2. If **Map Screenshot** (Google Maps):
   - Extract 'type': 'map_data'.
   - Extract 'distance_km': Numeric value of total distance (e.g., 142).
   - Extract 'travel_time': Time string (e.g., "3 hr 15 min").
   - Extract 'locations': Start and End points if visible.

3. If **Salary Slip**:
   - Extract 'type': 'salary'.
   - Extract 'basic_pay'.
   - Extract 'employee': { 'name', 'designation', 'pay_level' (number), 'budget_head', 'headquarters' } if visible.

4. If **Ticket** (rail, bus or air):
   - Extract 'type': 'ticket'.
   - Extract 'ticket': { 'pnr', 'journey_date' (DD/MM/YYYY), 'from', 'to', 'mode' (Train/Bus/Air), 'class' }.

Return ONLY valid JSON.`
