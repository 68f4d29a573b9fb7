package prompt

// preamble introduces the task and precedes the enumerated rows
const preamble = `Eres un avaluador experto y estas en el proceso de buscar equipos y estructuras que sean comparables a las características de los siguientes equipos que te describo con nombre, descripción y marcas separados por /// y enumerados que te doy después de los asterísticos*** 
`

// instructions describes the reply schema and follows the enumerated rows
const instructions = `
***. con estos datos tendrás la siguiente tarea: 
- Para cada uno de los productos enumerados en este grupo, busca **exactamente 3 productos similares en internet** (de cualquier marca). 
- Entrega **solo 3 resultados por producto**, ni más ni menos.
- Cada resultado debe incluir:
    - Precio del producto y moneda
    - Link donde encontraste la información

Formato de entrega:

{ "Producto": "Nombre del producto original", 
"Descripción": "Descripción del producto original",
 "Marca": "Marca del producto original",
  "Resultados": {
     "Comparable 1 en US": "Precio en USD del primer producto comparable",
     "Comparable 2 en US": "Precio en USD del segundo producto comparable",
     "Comparable 3 en US": "Precio en USD del tercer producto comparable",
     "Fuente comparable 1": "NACIONAL o INTERNACIONAL",
     "Fuente comparable 2": "NACIONAL o INTERNACIONAL", 
     "Fuente comparable 3": "NACIONAL o INTERNACIONAL",
     "Link de comparable 1": "URL del producto comparable 1",
     "Link de comparable 2": "URL del producto comparable 2", 
     "Link de comparable 3": "URL del producto comparable 3" 
     } 
}

Consideraciones:
- Prioriza productos que tengan precio visible. Si no hay precio, deja el campo vacío.
- El objetivo principal es obtener un rango de precios entre equipos similares.
- Los productos deben ser del mismo tipo y capacidad.
- Asegúrate de que los links estén activos y que funcionen correctamente.
- Usa el formato JSON proporcionado sin cambios.
- No agregues nada fuera del formato solicitado.
- La extracción debe ser precisa y coherente.
- Realiza una búsqueda rigurosa por internet.
- Verifica que las páginas estén activas y que los links no den error 404.
- Entrega solo el formato JSON
`
