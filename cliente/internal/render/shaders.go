package render

// Shader do coral: iluminação difusa de duas fontes fixas mais uma
// componente ambiente, com tinta por profundidade para dar leitura de
// volume nas cavidades da malha.

const coralVertexShader = `
#version 330

in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;

out vec3 fragNormal;
out vec3 fragWorldPos;

void main() {
    fragNormal = mat3(matModel) * vertexNormal;
    fragWorldPos = vec3(matModel * vec4(vertexPosition, 1.0));
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const coralFragmentShader = `
#version 330

in vec3 fragNormal;
in vec3 fragWorldPos;

uniform vec4 colDiffuse;
uniform float maxHeight;

out vec4 finalColor;

void main() {
    vec3 n = normalize(fragNormal);

    vec3 keyDir = normalize(vec3(0.5, 0.8, 0.3));
    vec3 fillDir = normalize(vec3(-0.6, 0.2, -0.5));

    float key = max(dot(n, keyDir), 0.0);
    float fill = max(dot(n, fillDir), 0.0) * 0.35;
    float ambient = 0.22;

    // Clareia em direção às pontas, escurece na base
    float h = clamp(fragWorldPos.y / max(maxHeight, 0.001), 0.0, 1.0);
    vec3 tint = mix(vec3(0.75, 0.85, 1.0), vec3(1.0, 1.0, 0.95), h);

    vec3 lit = colDiffuse.rgb * tint * (ambient + key + fill);
    finalColor = vec4(lit, colDiffuse.a);
}
`
